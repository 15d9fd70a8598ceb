package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(dept *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	Update(dept *entity.Department) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Department, error)
	Delete(id string) error
}
