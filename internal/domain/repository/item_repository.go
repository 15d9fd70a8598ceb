package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(organizationID, sku string) (*entity.Item, error)
	Update(item *entity.Item) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
