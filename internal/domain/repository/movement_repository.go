package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para Movement (DIP).
// Los movimientos son append-only: no existe Update ni Delete.
type MovementRepository interface {
	Create(mov *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.Movement, error)
	ListBySource(sourceType, sourceID string) ([]*entity.Movement, error)
}
