package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error)
	ListByRole(organizationID, role string) ([]*entity.User, error)
}
