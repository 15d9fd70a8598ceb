package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) para la sección
// crítica leer-validar-escribir de los contadores; usarlo siempre dentro
// de una transacción del TxRunner.
type InventoryRepository interface {
	Create(inv *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	GetByItemAndStore(itemID, storeID string) (*entity.Inventory, error)
	GetForUpdate(id string) (*entity.Inventory, error)
	GetByItemAndStoreForUpdate(itemID, storeID string) (*entity.Inventory, error)
	Update(inv *entity.Inventory) error
	ListByStore(storeID string, limit, offset int) ([]*entity.Inventory, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Inventory, error)
}
