package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	ledger "github.com/medtrack/medtrack-api/internal/domain/inventory"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// InventoryQueryUseCase consultas y administración de registros de inventario:
// alta de un item en un almacén, niveles, historial de movimientos y alertas.
// Las mutaciones de contadores viven en application/inventory.
type InventoryQueryUseCase struct {
	invRepo   repository.InventoryRepository
	movRepo   repository.MovementRepository
	alertRepo repository.StockAlertRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewInventoryQueryUseCase construye el caso de uso.
func NewInventoryQueryUseCase(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.StockAlertRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
) *InventoryQueryUseCase {
	return &InventoryQueryUseCase{
		invRepo:   invRepo,
		movRepo:   movRepo,
		alertRepo: alertRepo,
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
	}
}

// CreateRecord da de alta un registro de inventario (item, store) con
// contadores en cero. Falla con ErrDuplicate si el par ya existe.
func (uc *InventoryQueryUseCase) CreateRecord(organizationID string, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.ItemID == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.invRepo.GetByItemAndStore(in.ItemID, in.StoreID); existing != nil {
		return nil, domain.ErrDuplicate
	}

	minimum := in.Minimum
	if minimum <= 0 {
		minimum = 10
	}
	maximum := in.Maximum
	if maximum <= 0 {
		maximum = 1000
	}
	now := time.Now()
	inv := &entity.Inventory{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		StoreID:   in.StoreID,
		Minimum:   minimum,
		Maximum:   maximum,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.Status = ledger.StatusFor(inv)
	if err := uc.invRepo.Create(inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// GetByID obtiene un registro de inventario de la organización del actor.
func (uc *InventoryQueryUseCase) GetByID(organizationID, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.scoped(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// ListByStore lista los niveles de stock de un almacén.
func (uc *InventoryQueryUseCase) ListByStore(organizationID, storeID string, limit, offset int) ([]*dto.InventoryResponse, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.invRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInventoryResponse(inv))
	}
	return out, nil
}

// ListByOrganization lista todos los niveles de stock de la organización.
func (uc *InventoryQueryUseCase) ListByOrganization(organizationID string, limit, offset int) ([]*dto.InventoryResponse, error) {
	list, err := uc.invRepo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInventoryResponse(inv))
	}
	return out, nil
}

// ListMovements devuelve el historial de movimientos de un inventario en
// orden de aplicación.
func (uc *InventoryQueryUseCase) ListMovements(organizationID, inventoryID string, limit, offset int) ([]*dto.MovementResponse, error) {
	if _, err := uc.scoped(organizationID, inventoryID); err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListByInventory(inventoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListUnresolvedAlerts lista las alertas de stock pendientes.
func (uc *InventoryQueryUseCase) ListUnresolvedAlerts(limit, offset int) ([]*dto.StockAlertResponse, error) {
	alerts, err := uc.alertRepo.ListUnresolved(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toStockAlertResponse(a))
	}
	return out, nil
}

// ResolveAlert marca una alerta como resuelta por el actor.
func (uc *InventoryQueryUseCase) ResolveAlert(alertID, resolvedBy string) error {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	return uc.alertRepo.Resolve(alertID, resolvedBy, time.Now())
}

// scoped obtiene el inventario y valida que su artículo pertenezca a la
// organización del actor.
func (uc *InventoryQueryUseCase) scoped(organizationID, inventoryID string) (*entity.Inventory, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(inv.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:        inv.ID,
		ItemID:    inv.ItemID,
		StoreID:   inv.StoreID,
		Available: inv.Available,
		Reserved:  inv.Reserved,
		Minimum:   inv.Minimum,
		Maximum:   inv.Maximum,
		Status:    inv.Status,
		Location:  inv.Location,
		UpdatedAt: inv.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:                 m.ID,
		InventoryID:        m.InventoryID,
		Kind:               m.Kind,
		Direction:          m.Direction,
		Quantity:           m.Quantity,
		DestinationStoreID: m.DestinationStoreID,
		SourceType:         m.SourceType,
		SourceID:           m.SourceID,
		PerformedBy:        m.PerformedBy,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
	}
}

func toStockAlertResponse(a *entity.StockAlert) *dto.StockAlertResponse {
	return &dto.StockAlertResponse{
		ID:          a.ID,
		InventoryID: a.InventoryID,
		AlertType:   a.AlertType,
		Severity:    a.Severity,
		Message:     a.Message,
		IsResolved:  a.IsResolved,
		ResolvedBy:  a.ResolvedBy,
		ResolvedAt:  a.ResolvedAt,
		CreatedAt:   a.CreatedAt,
	}
}
