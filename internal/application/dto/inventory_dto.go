package dto

import "time"

// CreateInventoryRequest body para POST /api/inventory (alta de un item en un almacén).
type CreateInventoryRequest struct {
	ItemID   string `json:"item_id"`
	StoreID  string `json:"store_id"`
	Minimum  int64  `json:"minimum,omitempty"` // por defecto 10
	Maximum  int64  `json:"maximum,omitempty"` // por defecto 1000
	Location string `json:"location,omitempty"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para stock_in/stock_out/reserve/release/write_off: item_id, store_id, type, quantity.
// Para transfer: item_id, from_store_id, to_store_id, type=transfer, quantity.
// Para adjustment: quantity con signo (positivo suma, negativo descuenta).
type RegisterMovementRequest struct {
	ItemID      string `json:"item_id"`
	StoreID     string `json:"store_id,omitempty"`
	FromStoreID string `json:"from_store_id,omitempty"`
	ToStoreID   string `json:"to_store_id,omitempty"`
	Type        string `json:"type"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// InventoryResponse contadores de stock en respuestas.
type InventoryResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	StoreID   string    `json:"store_id"`
	Available int64     `json:"available"`
	Reserved  int64     `json:"reserved"`
	Minimum   int64     `json:"minimum"`
	Maximum   int64     `json:"maximum"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovementResponse movimiento del ledger en respuestas.
type MovementResponse struct {
	ID                 string    `json:"id"`
	InventoryID        string    `json:"inventory_id"`
	Kind               string    `json:"kind"`
	Direction          string    `json:"direction,omitempty"`
	Quantity           int64     `json:"quantity"`
	DestinationStoreID string    `json:"destination_store_id,omitempty"`
	SourceType         string    `json:"source_type"`
	SourceID           string    `json:"source_id,omitempty"`
	PerformedBy        string    `json:"performed_by,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// StockAlertResponse alerta de stock en respuestas.
type StockAlertResponse struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	AlertType   string     `json:"alert_type"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	IsResolved  bool       `json:"is_resolved"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
