package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	ledger "github.com/medtrack/medtrack-api/internal/domain/inventory"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (stock_in, stock_out, reserve, release, transfer, write_off,
// adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es la única puerta de entrada para mutaciones manuales del ledger.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
	}
}

// MovementInput entrada para registrar un movimiento manual.
// Para stock_in/stock_out/reserve/release/write_off: ItemID, StoreID, Kind, Quantity.
// Para transfer: ItemID, FromStoreID, ToStoreID, Kind=transfer, Quantity.
// Para adjustment: Quantity con signo (positivo suma, negativo descuenta).
type MovementInput struct {
	OrganizationID string
	UserID         string
	ItemID         string
	StoreID        string
	FromStoreID    string
	ToStoreID      string
	Kind           string
	Quantity       int64
	Notes          string
}

// RegisterMovement valida la entrada, verifica que artículo y almacén(es)
// pertenezcan a la organización del actor, y aplica la mutación dentro de
// una transacción con la fila de inventario bloqueada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	switch input.Kind {
	case entity.MovementStockIn, entity.MovementStockOut, entity.MovementReserve,
		entity.MovementRelease, entity.MovementWriteOff:
		if input.ItemID == "" || input.StoreID == "" || input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementAdjustment:
		if input.ItemID == "" || input.StoreID == "" || input.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTransfer:
		if input.ItemID == "" || input.FromStoreID == "" || input.ToStoreID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromStoreID == input.ToStoreID || input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.OrganizationID != input.OrganizationID {
		return domain.ErrForbidden
	}

	if input.Kind == entity.MovementTransfer {
		if err := uc.checkStore(input.FromStoreID, input.OrganizationID); err != nil {
			return err
		}
		if err := uc.checkStore(input.ToStoreID, input.OrganizationID); err != nil {
			return err
		}
	} else {
		if err := uc.checkStore(input.StoreID, input.OrganizationID); err != nil {
			return err
		}
	}

	now := time.Now()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		invRepo repository.InventoryRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		if input.Kind == entity.MovementTransfer {
			return uc.doTransfer(movRepo, invRepo, alertRepo, input, now)
		}
		return uc.doSingle(movRepo, invRepo, alertRepo, input, now)
	})
}

func (uc *RegisterMovementUseCase) checkStore(storeID, organizationID string) error {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	if store.OrganizationID != organizationID {
		return domain.ErrForbidden
	}
	return nil
}

// doSingle aplica un movimiento sobre un único registro de inventario:
// bloquea la fila, aplica el fold del ledger, persiste contadores y
// movimiento, y genera alerta si el estado se degradó.
func (uc *RegisterMovementUseCase) doSingle(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
	alertRepo repository.StockAlertRepository,
	input MovementInput,
	now time.Time,
) error {
	kind := input.Kind
	direction := ""
	qty := input.Quantity
	if kind == entity.MovementAdjustment {
		direction = entity.DirectionIn
		if qty < 0 {
			direction = entity.DirectionOut
			qty = -qty
		}
	}

	inv, err := invRepo.GetByItemAndStoreForUpdate(input.ItemID, input.StoreID)
	if err != nil {
		return err
	}
	if inv == nil {
		// El registro de inventario nace con la primera entrada de stock.
		if kind != entity.MovementStockIn {
			return domain.ErrNotFound
		}
		inv = newInventoryRecord(input.ItemID, input.StoreID, now)
		if err := invRepo.Create(inv); err != nil {
			return err
		}
	}

	mov := &entity.Movement{
		ID:          uuid.New().String(),
		InventoryID: inv.ID,
		Kind:        kind,
		Direction:   direction,
		Quantity:    qty,
		SourceType:  entity.SourceManual,
		PerformedBy: input.UserID,
		Notes:       input.Notes,
		CreatedAt:   now,
	}
	return ApplyAndPersist(movRepo, invRepo, alertRepo, inv, mov, now)
}

// doTransfer descuenta del almacén origen y suma en el destino dentro de la
// misma transacción, registrando una fila de movimiento por cada lado.
func (uc *RegisterMovementUseCase) doTransfer(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
	alertRepo repository.StockAlertRepository,
	input MovementInput,
	now time.Time,
) error {
	origin, err := invRepo.GetByItemAndStoreForUpdate(input.ItemID, input.FromStoreID)
	if err != nil {
		return err
	}
	if origin == nil {
		return domain.ErrNotFound
	}

	dest, err := invRepo.GetByItemAndStoreForUpdate(input.ItemID, input.ToStoreID)
	if err != nil {
		return err
	}
	if dest == nil {
		dest = newInventoryRecord(input.ItemID, input.ToStoreID, now)
		if err := invRepo.Create(dest); err != nil {
			return err
		}
	}

	transferID := uuid.New().String()

	outMov := &entity.Movement{
		ID:                 uuid.New().String(),
		InventoryID:        origin.ID,
		Kind:               entity.MovementTransfer,
		Direction:          entity.DirectionOut,
		Quantity:           input.Quantity,
		DestinationStoreID: input.ToStoreID,
		SourceType:         entity.SourceTransferOrder,
		SourceID:           transferID,
		PerformedBy:        input.UserID,
		Notes:              input.Notes,
		CreatedAt:          now,
	}
	if err := ApplyAndPersist(movRepo, invRepo, alertRepo, origin, outMov, now); err != nil {
		return err
	}

	inMov := &entity.Movement{
		ID:          uuid.New().String(),
		InventoryID: dest.ID,
		Kind:        entity.MovementTransfer,
		Direction:   entity.DirectionIn,
		Quantity:    input.Quantity,
		SourceType:  entity.SourceTransferOrder,
		SourceID:    transferID,
		PerformedBy: input.UserID,
		Notes:       input.Notes,
		CreatedAt:   now,
	}
	return ApplyAndPersist(movRepo, invRepo, alertRepo, dest, inMov, now)
}

// ApplyAndPersist aplica el fold del ledger sobre el registro bloqueado y
// persiste contadores, movimiento y (si aplica) alerta de stock degradado.
func ApplyAndPersist(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
	alertRepo repository.StockAlertRepository,
	inv *entity.Inventory,
	mov *entity.Movement,
	now time.Time,
) error {
	prevStatus := inv.Status
	if err := ledger.Apply(inv, mov); err != nil {
		return err
	}
	inv.UpdatedAt = now
	if err := invRepo.Update(inv); err != nil {
		return err
	}
	if err := movRepo.Create(mov); err != nil {
		return err
	}
	if inv.Status != prevStatus {
		if alert := ledger.AlertFor(inv); alert != nil {
			alert.ID = uuid.New().String()
			alert.CreatedAt = now
			if err := alertRepo.Create(alert); err != nil {
				return err
			}
		}
	}
	return nil
}

func newInventoryRecord(itemID, storeID string, now time.Time) *entity.Inventory {
	inv := &entity.Inventory{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		StoreID:   storeID,
		Minimum:   10,
		Maximum:   1000,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.Status = ledger.StatusFor(inv)
	return inv
}
