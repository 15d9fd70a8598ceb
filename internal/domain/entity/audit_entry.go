package entity

import "time"

// AuditEntry registra una acción sobre un objeto del sistema. Inmutable:
// se escribe una entrada por transición exitosa dentro del mismo commit
// que la mutación de estado/ledger, nunca se edita ni borra.
type AuditEntry struct {
	ID          string
	SubjectType string // ej. Requisition, Inventory
	SubjectID   string
	Action      string // ej. approved, reserved, delivered
	ActorID     string
	Description string
	Timestamp   time.Time
}
