package entity

import "time"

// Estados del flujo de requisición. El estado solo avanza por el grafo de
// transiciones definido en application/requisition; rejected es terminal y
// alcanzable únicamente desde requested.
const (
	ReqStatusRequested = "requested"
	ReqStatusApproved  = "approved"
	ReqStatusRejected  = "rejected"
	ReqStatusReserved  = "reserved"
	ReqStatusDelivered = "delivered"
	ReqStatusVerified  = "verified"
	ReqStatusCompleted = "completed"
)

// Prioridades de una requisición.
const (
	PriorityNormal   = "normal"
	PriorityUrgent   = "urgent"
	PriorityCritical = "critical"
)

// Requisition representa una solicitud de stock de un departamento: una
// instancia del workflow solicitud → aprobación → reserva → entrega →
// verificación. Quantity es inmutable tras la creación.
type Requisition struct {
	ID             string
	OrganizationID string
	DepartmentID   string
	RequestedBy    string
	ApprovedBy     string // vacío hasta la aprobación (o rechazo)
	InventoryID    string
	Quantity       int64
	Priority       string
	Reason         string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsTerminal indica si la requisición alcanzó un estado final.
func (r *Requisition) IsTerminal() bool {
	return r.Status == ReqStatusRejected || r.Status == ReqStatusCompleted
}
