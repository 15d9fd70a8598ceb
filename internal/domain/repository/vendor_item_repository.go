package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// VendorItemRepository define el puerto de persistencia para VendorItem (DIP).
type VendorItemRepository interface {
	Create(vi *entity.VendorItem) error
	GetByID(id string) (*entity.VendorItem, error)
	Update(vi *entity.VendorItem) error
	ListByVendor(vendorID string, limit, offset int) ([]*entity.VendorItem, error)
	ListByItem(itemID string) ([]*entity.VendorItem, error)
}
