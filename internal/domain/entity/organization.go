package entity

import "time"

// Organization representa una organización de salud (tenant raíz del sistema).
type Organization struct {
	ID        string
	Name      string
	Code      string // único, ej. NHS-A1B2C3; se autogenera si viene vacío
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
