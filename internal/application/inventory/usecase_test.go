package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	ledger "github.com/medtrack/medtrack-api/internal/domain/inventory"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica Commit/Rollback: el TxRunner trabaja sobre
// una copia del estado y solo la publica si fn retorna nil.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	invs   map[string]*entity.Inventory
	movs   []*entity.Movement
	alerts []*entity.StockAlert
}

func (s *memState) clone() *memState {
	c := &memState{invs: map[string]*entity.Inventory{}}
	for id, inv := range s.invs {
		cp := *inv
		c.invs[id] = &cp
	}
	c.movs = append([]*entity.Movement(nil), s.movs...)
	c.alerts = append([]*entity.StockAlert(nil), s.alerts...)
	return c
}

type memDB struct {
	mu    sync.Mutex
	state *memState
}

func (db *memDB) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx := db.state.clone()
	if err := fn(&memMovRepo{tx}, &memInvRepo{tx}, &memAlertRepo{tx}); err != nil {
		return err
	}
	db.state = tx
	return nil
}

type memInvRepo struct{ s *memState }

func (r *memInvRepo) Create(inv *entity.Inventory) error {
	cp := *inv
	r.s.invs[inv.ID] = &cp
	return nil
}
func (r *memInvRepo) GetByID(id string) (*entity.Inventory, error) {
	if inv, ok := r.s.invs[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}
func (r *memInvRepo) GetByItemAndStore(itemID, storeID string) (*entity.Inventory, error) {
	for _, inv := range r.s.invs {
		if inv.ItemID == itemID && inv.StoreID == storeID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memInvRepo) GetForUpdate(id string) (*entity.Inventory, error) { return r.GetByID(id) }
func (r *memInvRepo) GetByItemAndStoreForUpdate(itemID, storeID string) (*entity.Inventory, error) {
	return r.GetByItemAndStore(itemID, storeID)
}
func (r *memInvRepo) Update(inv *entity.Inventory) error {
	cp := *inv
	r.s.invs[inv.ID] = &cp
	return nil
}
func (r *memInvRepo) ListByStore(string, int, int) ([]*entity.Inventory, error)        { return nil, nil }
func (r *memInvRepo) ListByOrganization(string, int, int) ([]*entity.Inventory, error) { return nil, nil }

type memMovRepo struct{ s *memState }

func (r *memMovRepo) Create(mov *entity.Movement) error {
	cp := *mov
	r.s.movs = append(r.s.movs, &cp)
	return nil
}
func (r *memMovRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *memMovRepo) ListByInventory(string, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovRepo) ListBySource(string, string) ([]*entity.Movement, error) { return nil, nil }

type memAlertRepo struct{ s *memState }

func (r *memAlertRepo) Create(alert *entity.StockAlert) error {
	cp := *alert
	r.s.alerts = append(r.s.alerts, &cp)
	return nil
}
func (r *memAlertRepo) GetByID(string) (*entity.StockAlert, error) { return nil, nil }
func (r *memAlertRepo) ListUnresolved(int, int) ([]*entity.StockAlert, error) {
	return nil, nil
}
func (r *memAlertRepo) ListByInventory(string, int, int) ([]*entity.StockAlert, error) {
	return nil, nil
}
func (r *memAlertRepo) Resolve(string, string, time.Time) error { return nil }

type memItemRepo struct{ items map[string]*entity.Item }

func (r *memItemRepo) Create(*entity.Item) error               { return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) { return r.items[id], nil }
func (r *memItemRepo) GetBySKU(string, string) (*entity.Item, error) {
	return nil, nil
}
func (r *memItemRepo) Update(*entity.Item) error { return nil }
func (r *memItemRepo) ListByOrganization(string, int, int) ([]*entity.Item, error) {
	return nil, nil
}
func (r *memItemRepo) Delete(string) error { return nil }

type memStoreRepo struct{ stores map[string]*entity.Store }

func (r *memStoreRepo) Create(*entity.Store) error                { return nil }
func (r *memStoreRepo) GetByID(id string) (*entity.Store, error)  { return r.stores[id], nil }
func (r *memStoreRepo) Update(*entity.Store) error                { return nil }
func (r *memStoreRepo) ListByOrganization(string, int, int) ([]*entity.Store, error) {
	return nil, nil
}
func (r *memStoreRepo) Delete(string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const testOrg = "org-1"

type fixture struct {
	db *memDB
	uc *appinv.RegisterMovementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := &memDB{state: &memState{invs: map[string]*entity.Inventory{}}}
	itemRepo := &memItemRepo{items: map[string]*entity.Item{
		"item-1": {ID: "item-1", OrganizationID: testOrg, Name: "Syringes 5ml", SKU: "SYR-05"},
	}}
	storeRepo := &memStoreRepo{stores: map[string]*entity.Store{
		"store-1": {ID: "store-1", OrganizationID: testOrg, Name: "Central Store"},
		"store-2": {ID: "store-2", OrganizationID: testOrg, Name: "Ward B Substore"},
		"store-x": {ID: "store-x", OrganizationID: "org-2", Name: "Foreign Store"},
	}}
	return &fixture{db: db, uc: appinv.NewRegisterMovementUseCase(db, itemRepo, storeRepo)}
}

func (f *fixture) register(t *testing.T, in appinv.MovementInput) error {
	t.Helper()
	in.OrganizationID = testOrg
	in.UserID = "u-1"
	return f.uc.RegisterMovement(context.Background(), in)
}

func (f *fixture) inventoryAt(t *testing.T, storeID string) *entity.Inventory {
	t.Helper()
	for _, inv := range f.db.state.invs {
		if inv.ItemID == "item-1" && inv.StoreID == storeID {
			return inv
		}
	}
	t.Fatalf("no hay registro de inventario para item-1 en %s", storeID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_StockInCreaRegistro(t *testing.T) {
	f := newFixture(t)

	err := f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 50,
	})
	require.NoError(t, err)

	inv := f.inventoryAt(t, "store-1")
	assert.Equal(t, int64(50), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)
	assert.Equal(t, entity.InventoryStatusAvailable, inv.Status)
	require.Len(t, f.db.state.movs, 1)
	assert.Equal(t, entity.SourceManual, f.db.state.movs[0].SourceType)
}

func TestRegisterMovement_StockOutSinRegistro(t *testing.T) {
	f := newFixture(t)

	err := f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockOut, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.db.state.movs)
}

func TestRegisterMovement_StockInsuficiente_Revierte(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 30,
	}))

	err := f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockOut, Quantity: 31,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv := f.inventoryAt(t, "store-1")
	assert.Equal(t, int64(30), inv.Available, "el rollback debe dejar los contadores intactos")
	assert.Len(t, f.db.state.movs, 1)
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 100,
	}))

	// Ajuste negativo descuenta
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementAdjustment, Quantity: -8,
	}))
	assert.Equal(t, int64(92), f.inventoryAt(t, "store-1").Available)

	// Ajuste positivo suma
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementAdjustment, Quantity: 3,
	}))
	assert.Equal(t, int64(95), f.inventoryAt(t, "store-1").Available)

	// Las filas persistidas llevan cantidad positiva y dirección explícita.
	require.Len(t, f.db.state.movs, 3)
	neg, pos := f.db.state.movs[1], f.db.state.movs[2]
	assert.Equal(t, int64(8), neg.Quantity)
	assert.Equal(t, entity.DirectionOut, neg.Direction)
	assert.Equal(t, int64(3), pos.Quantity)
	assert.Equal(t, entity.DirectionIn, pos.Direction)
}

func TestRegisterMovement_Transferencia(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 40,
	}))

	err := f.register(t, appinv.MovementInput{
		ItemID: "item-1", FromStoreID: "store-1", ToStoreID: "store-2",
		Kind: entity.MovementTransfer, Quantity: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), f.inventoryAt(t, "store-1").Available)
	assert.Equal(t, int64(15), f.inventoryAt(t, "store-2").Available)

	// Dos filas (out e in) compartiendo el mismo SourceID de transferencia.
	require.Len(t, f.db.state.movs, 3)
	out, in := f.db.state.movs[1], f.db.state.movs[2]
	assert.Equal(t, entity.DirectionOut, out.Direction)
	assert.Equal(t, "store-2", out.DestinationStoreID)
	assert.Equal(t, entity.DirectionIn, in.Direction)
	assert.Equal(t, out.SourceID, in.SourceID)
	assert.Equal(t, entity.SourceTransferOrder, out.SourceType)
}

func TestRegisterMovement_TransferenciaSinStock_NoTocaDestino(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 5,
	}))

	err := f.register(t, appinv.MovementInput{
		ItemID: "item-1", FromStoreID: "store-1", ToStoreID: "store-2",
		Kind: entity.MovementTransfer, Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), f.inventoryAt(t, "store-1").Available)
	// El registro destino no debe haberse creado: la tx se revirtió entera.
	for _, inv := range f.db.state.invs {
		assert.NotEqual(t, "store-2", inv.StoreID)
	}
}

func TestRegisterMovement_AlertaAlDegradarse(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockIn, Quantity: 12,
	}))
	require.Empty(t, f.db.state.alerts)

	// 12 → 4 cruza el mínimo (10 por defecto): alerta low_stock
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockOut, Quantity: 8,
	}))
	require.Len(t, f.db.state.alerts, 1)
	assert.Equal(t, entity.AlertLowStock, f.db.state.alerts[0].AlertType)

	// 4 → 0: alerta out_of_stock
	require.NoError(t, f.register(t, appinv.MovementInput{
		ItemID: "item-1", StoreID: "store-1",
		Kind: entity.MovementStockOut, Quantity: 4,
	}))
	require.Len(t, f.db.state.alerts, 2)
	assert.Equal(t, entity.AlertOutOfStock, f.db.state.alerts[1].AlertType)
	assert.Equal(t, entity.InventoryStatusOutOfStock, f.inventoryAt(t, "store-1").Status)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   appinv.MovementInput
		want error
	}{
		{"tipo desconocido", appinv.MovementInput{ItemID: "item-1", StoreID: "store-1", Kind: "evaporation", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", appinv.MovementInput{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementStockIn, Quantity: 0}, domain.ErrInvalidInput},
		{"ajuste cero", appinv.MovementInput{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementAdjustment, Quantity: 0}, domain.ErrInvalidInput},
		{"transferencia al mismo almacén", appinv.MovementInput{ItemID: "item-1", FromStoreID: "store-1", ToStoreID: "store-1", Kind: entity.MovementTransfer, Quantity: 1}, domain.ErrInvalidInput},
		{"artículo inexistente", appinv.MovementInput{ItemID: "nope", StoreID: "store-1", Kind: entity.MovementStockIn, Quantity: 1}, domain.ErrNotFound},
		{"almacén de otra organización", appinv.MovementInput{ItemID: "item-1", StoreID: "store-x", Kind: entity.MovementStockIn, Quantity: 1}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, f.register(t, tc.in), tc.want)
		})
	}
}

// El historial completo de movimientos reproduce los contadores finales.
func TestRegisterMovement_HistorialReproducible(t *testing.T) {
	f := newFixture(t)
	steps := []appinv.MovementInput{
		{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementStockIn, Quantity: 100},
		{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementReserve, Quantity: 30},
		{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementRelease, Quantity: 10},
		{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementAdjustment, Quantity: -5},
		{ItemID: "item-1", StoreID: "store-1", Kind: entity.MovementWriteOff, Quantity: 2},
	}
	for _, s := range steps {
		require.NoError(t, f.register(t, s))
	}

	final := f.inventoryAt(t, "store-1")
	replayed := &entity.Inventory{Minimum: final.Minimum}
	require.NoError(t, ledger.Replay(replayed, f.db.state.movs))
	assert.Equal(t, final.Available, replayed.Available)
	assert.Equal(t, final.Reserved, replayed.Reserved)
	assert.Equal(t, final.Status, replayed.Status)
}
