package entity

import "time"

// Item representa un artículo del catálogo (insumo médico, de oficina, quirúrgico...).
// Inmutable durante el ciclo de vida de una requisición.
type Item struct {
	ID             string
	OrganizationID string
	Name           string
	SKU            string // único por organización
	Description    string
	Category       string // ej. Medical, Office, Surgical
	UnitOfMeasure  string // ej. units, boxes, packs
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
