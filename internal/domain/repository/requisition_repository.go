package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// RequisitionRepository define el puerto de persistencia para Requisition (DIP).
// GetForUpdate bloquea la fila de la requisición para serializar
// transiciones concurrentes sobre la misma instancia del workflow.
type RequisitionRepository interface {
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	GetForUpdate(id string) (*entity.Requisition, error)
	Update(req *entity.Requisition) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Requisition, error)
	ListByDepartment(departmentID string, limit, offset int) ([]*entity.Requisition, error)
}
