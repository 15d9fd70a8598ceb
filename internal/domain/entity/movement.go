package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementStockIn    = "stock_in"
	MovementStockOut   = "stock_out"
	MovementReserve    = "reserve"
	MovementRelease    = "release"
	MovementTransfer   = "transfer"
	MovementWriteOff   = "write_off"
	MovementAdjustment = "adjustment"
)

// Dirección del efecto sobre el disponible. Solo es significativa para
// adjustment y transfer (que generan filas en ambos sentidos); el resto de
// tipos tiene dirección implícita en su semántica.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Orígenes de un movimiento.
const (
	SourceManual        = "manual"
	SourceRequisition   = "requisition"
	SourcePurchaseOrder = "purchase_order"
	SourceTransferOrder = "transfer_order"
	SourceStockTake     = "stock_take"
)

// Movement representa una mutación discreta del ledger de inventario.
// Es inmutable y append-only: los contadores de Inventory deben poder
// reconstruirse como el fold ordenado de todos sus movimientos (semántica
// de write-ahead log).
type Movement struct {
	ID                 string
	InventoryID        string
	Kind               string
	Direction          string // in|out; vacío equivale a in
	Quantity           int64  // siempre positivo
	DestinationStoreID string // solo transferencias salientes
	SourceType         string
	SourceID           string // ej. ID de requisición u orden
	PerformedBy        string
	Notes              string
	CreatedAt          time.Time
}
