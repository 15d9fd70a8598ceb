package dto

import "time"

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int64  `json:"quantity"`
	Priority    string `json:"priority,omitempty"` // por defecto normal
	Reason      string `json:"reason,omitempty"`
}

// RequisitionResponse requisición en respuestas.
type RequisitionResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	DepartmentID   string    `json:"department_id"`
	RequestedBy    string    `json:"requested_by"`
	ApprovedBy     string    `json:"approved_by,omitempty"`
	InventoryID    string    `json:"inventory_id"`
	Quantity       int64     `json:"quantity"`
	Priority       string    `json:"priority"`
	Reason         string    `json:"reason,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AuditEntryResponse entrada de auditoría en respuestas.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   string    `json:"subject_id"`
	Action      string    `json:"action"`
	ActorID     string    `json:"actor_id,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
