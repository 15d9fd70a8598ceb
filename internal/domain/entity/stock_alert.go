package entity

import "time"

// Tipos y severidades de alertas de stock.
const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// StockAlert se genera cuando una mutación del ledger degrada el estado de
// un inventario (low_stock / out_of_stock), en la misma transacción.
type StockAlert struct {
	ID          string
	InventoryID string
	AlertType   string
	Severity    string
	Message     string
	IsResolved  bool
	ResolvedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}
