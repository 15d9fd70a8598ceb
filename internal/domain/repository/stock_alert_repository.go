package repository

import (
	"time"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
)

// StockAlertRepository define el puerto de persistencia para StockAlert (DIP).
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	ListUnresolved(limit, offset int) ([]*entity.StockAlert, error)
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.StockAlert, error)
	Resolve(id, resolvedBy string, at time.Time) error
}
