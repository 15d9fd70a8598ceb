package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/inventory"
)

func newInv(available, reserved, minimum int64) *entity.Inventory {
	inv := &entity.Inventory{
		ID:        "inv-1",
		ItemID:    "item-1",
		StoreID:   "store-1",
		Available: available,
		Reserved:  reserved,
		Minimum:   minimum,
		Maximum:   1000,
	}
	inv.Status = inventory.StatusFor(inv)
	return inv
}

func mov(kind string, qty int64) *entity.Movement {
	return &entity.Movement{InventoryID: "inv-1", Kind: kind, Quantity: qty}
}

func movDir(kind, direction string, qty int64) *entity.Movement {
	m := mov(kind, qty)
	m.Direction = direction
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Efectos por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_StockIn_SumaDisponible(t *testing.T) {
	inv := newInv(0, 0, 10)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementStockIn, 50)))
	assert.Equal(t, int64(50), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)
	assert.Equal(t, entity.InventoryStatusAvailable, inv.Status)
}

func TestApply_StockOut_DescuentaDisponible(t *testing.T) {
	inv := newInv(50, 0, 10)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementStockOut, 20)))
	assert.Equal(t, int64(30), inv.Available)
}

func TestApply_StockOut_SinStock_FallaSinMutar(t *testing.T) {
	inv := newInv(5, 3, 10)
	err := inventory.Apply(inv, mov(entity.MovementStockOut, 6))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), inv.Available, "un fallo no debe mutar contadores")
	assert.Equal(t, int64(3), inv.Reserved)
}

func TestApply_Reserve_MueveDisponibleAReservado(t *testing.T) {
	inv := newInv(100, 0, 10)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementReserve, 10)))
	assert.Equal(t, int64(90), inv.Available)
	assert.Equal(t, int64(10), inv.Reserved)
}

func TestApply_Release_RestauraDisponible(t *testing.T) {
	inv := newInv(90, 10, 10)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementRelease, 10)))
	assert.Equal(t, int64(100), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)
}

func TestApply_Release_SinReservado_Falla(t *testing.T) {
	inv := newInv(90, 5, 10)
	err := inventory.Apply(inv, mov(entity.MovementRelease, 10))
	assert.ErrorIs(t, err, domain.ErrInsufficientReserved)
	assert.Equal(t, int64(90), inv.Available)
	assert.Equal(t, int64(5), inv.Reserved)
}

// Ley de ida y vuelta: reserve seguido de release de la misma cantidad
// restaura exactamente los contadores previos.
func TestApply_ReserveRelease_RoundTrip(t *testing.T) {
	inv := newInv(73, 4, 10)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementReserve, 12)))
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementRelease, 12)))
	assert.Equal(t, int64(73), inv.Available)
	assert.Equal(t, int64(4), inv.Reserved)
}

func TestApply_WriteOff_DescuentaComoSalida(t *testing.T) {
	inv := newInv(10, 0, 2)
	require.NoError(t, inventory.Apply(inv, mov(entity.MovementWriteOff, 4)))
	assert.Equal(t, int64(6), inv.Available)
}

func TestApply_Adjustment_RespetaDireccion(t *testing.T) {
	inv := newInv(10, 0, 2)
	require.NoError(t, inventory.Apply(inv, movDir(entity.MovementAdjustment, entity.DirectionIn, 5)))
	assert.Equal(t, int64(15), inv.Available)

	require.NoError(t, inventory.Apply(inv, movDir(entity.MovementAdjustment, entity.DirectionOut, 3)))
	assert.Equal(t, int64(12), inv.Available)
}

func TestApply_Transfer_SalidaYEntrada(t *testing.T) {
	origin := newInv(20, 0, 2)
	dest := newInv(0, 0, 2)

	require.NoError(t, inventory.Apply(origin, movDir(entity.MovementTransfer, entity.DirectionOut, 8)))
	require.NoError(t, inventory.Apply(dest, movDir(entity.MovementTransfer, entity.DirectionIn, 8)))

	assert.Equal(t, int64(12), origin.Available)
	assert.Equal(t, int64(8), dest.Available)
}

func TestApply_CantidadNoPositiva_Falla(t *testing.T) {
	inv := newInv(10, 0, 2)
	assert.ErrorIs(t, inventory.Apply(inv, mov(entity.MovementStockIn, 0)), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.Apply(inv, mov(entity.MovementStockIn, -5)), domain.ErrInvalidInput)
}

func TestApply_TipoDesconocido_Falla(t *testing.T) {
	inv := newInv(10, 0, 2)
	assert.ErrorIs(t, inventory.Apply(inv, mov("teleport", 1)), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusFor_EsFuncionPuraDeDisponibleVsMinimo(t *testing.T) {
	cases := []struct {
		available int64
		minimum   int64
		want      string
	}{
		{0, 10, entity.InventoryStatusOutOfStock},
		{1, 10, entity.InventoryStatusLowStock},
		{10, 10, entity.InventoryStatusLowStock},
		{11, 10, entity.InventoryStatusAvailable},
		{500, 10, entity.InventoryStatusAvailable},
	}
	for _, tc := range cases {
		inv := &entity.Inventory{Available: tc.available, Minimum: tc.minimum}
		assert.Equal(t, tc.want, inventory.StatusFor(inv),
			"available=%d minimum=%d", tc.available, tc.minimum)
	}
}

func TestApply_RecalculaEstadoTrasCadaMutacion(t *testing.T) {
	inv := newInv(11, 0, 10)
	assert.Equal(t, entity.InventoryStatusAvailable, inv.Status)

	require.NoError(t, inventory.Apply(inv, mov(entity.MovementStockOut, 1)))
	assert.Equal(t, entity.InventoryStatusLowStock, inv.Status)

	require.NoError(t, inventory.Apply(inv, mov(entity.MovementStockOut, 10)))
	assert.Equal(t, entity.InventoryStatusOutOfStock, inv.Status)

	require.NoError(t, inventory.Apply(inv, mov(entity.MovementStockIn, 100)))
	assert.Equal(t, entity.InventoryStatusAvailable, inv.Status)
}

func TestAlertFor_GeneraAlertaSegunEstado(t *testing.T) {
	inv := newInv(0, 0, 10)
	alert := inventory.AlertFor(inv)
	require.NotNil(t, alert)
	assert.Equal(t, entity.AlertOutOfStock, alert.AlertType)
	assert.Equal(t, entity.SeverityCritical, alert.Severity)

	inv = newInv(5, 0, 10)
	alert = inventory.AlertFor(inv)
	require.NotNil(t, alert)
	assert.Equal(t, entity.AlertLowStock, alert.AlertType)

	inv = newInv(50, 0, 10)
	assert.Nil(t, inventory.AlertFor(inv))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de replay: el fold ordenado de los movimientos reproduce los
// contadores, y ambos permanecen >= 0 en cada prefijo.
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_ReproduceContadoresYPrefijosNoNegativos(t *testing.T) {
	movements := []*entity.Movement{
		mov(entity.MovementStockIn, 100),
		mov(entity.MovementReserve, 10),
		mov(entity.MovementRelease, 10),
		mov(entity.MovementReserve, 25),
		movDir(entity.MovementAdjustment, entity.DirectionOut, 5),
		mov(entity.MovementStockOut, 20),
		movDir(entity.MovementTransfer, entity.DirectionOut, 15),
		mov(entity.MovementStockIn, 40),
		mov(entity.MovementRelease, 25),
		mov(entity.MovementWriteOff, 3),
	}

	// Aplicación incremental verificando no-negatividad en cada prefijo
	live := newInv(0, 0, 10)
	for i, m := range movements {
		require.NoError(t, inventory.Apply(live, m), "movimiento %d", i)
		assert.GreaterOrEqual(t, live.Available, int64(0), "prefijo %d", i)
		assert.GreaterOrEqual(t, live.Reserved, int64(0), "prefijo %d", i)
	}

	// Replay desde cero reproduce exactamente los contadores finales
	replayed := newInv(0, 0, 10)
	require.NoError(t, inventory.Replay(replayed, movements))
	assert.Equal(t, live.Available, replayed.Available)
	assert.Equal(t, live.Reserved, replayed.Reserved)
	assert.Equal(t, live.Status, replayed.Status)
}

func TestReplay_PrefijoInvalido_Falla(t *testing.T) {
	movements := []*entity.Movement{
		mov(entity.MovementStockIn, 5),
		mov(entity.MovementStockOut, 10), // excede el disponible acumulado
	}
	inv := newInv(0, 0, 10)
	assert.ErrorIs(t, inventory.Replay(inv, movements), domain.ErrInsufficientStock)
}
