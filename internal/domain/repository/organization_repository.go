package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	GetByCode(code string) (*entity.Organization, error)
	Update(org *entity.Organization) error
	List(limit, offset int) ([]*entity.Organization, error)
	Delete(id string) error
}
