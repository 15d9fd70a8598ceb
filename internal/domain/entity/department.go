package entity

import "time"

// Department representa un departamento dentro de una organización (ej. Urgencias, Farmacia).
type Department struct {
	ID             string
	OrganizationID string
	Name           string
	Code           string // ej. NHS-A1B2C3-D0001
	Description    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
