package entity

import "time"

// Tipos de almacén.
const (
	StoreTypeInternal = "internal"
	StoreTypeVendor   = "vendor"
	StoreTypeWard     = "ward"
	StoreTypeClinic   = "clinic"
)

// Store representa un almacén interno, pabellón, clínica o proveedor externo.
type Store struct {
	ID             string
	OrganizationID string
	DepartmentID   string // opcional, solo para almacenes internos
	Name           string
	Code           string // ej. STORE-A1B2C3 / VEND-A1B2C3; se autogenera si viene vacío
	StoreType      string
	ContactPerson  string
	ContactEmail   string
	ContactPhone   string
	Address        string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsVendor indica si el almacén es un proveedor externo.
func (s *Store) IsVendor() bool { return s.StoreType == StoreTypeVendor }
