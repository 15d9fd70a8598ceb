package entity

import "time"

// Estados derivados del inventario (función pura de Available vs Minimum).
const (
	InventoryStatusAvailable  = "available"
	InventoryStatusLowStock   = "low_stock"
	InventoryStatusOutOfStock = "out_of_stock"
)

// Inventory representa los contadores de stock de un par (item, store).
// Invariante: Available >= 0 y Reserved >= 0 en todo momento. Los contadores
// solo mutan aplicando movimientos (ver domain/inventory); nunca por
// escritura directa de campos desde fuera del ledger.
type Inventory struct {
	ID          string
	ItemID      string
	StoreID     string
	Available   int64
	Reserved    int64
	Minimum     int64 // umbral de reorden
	Maximum     int64 // capacidad máxima
	Status      string
	Location    string // ej. Shelf A1, Room 101
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastChecked *time.Time
}

// Total devuelve el stock total (disponible + reservado).
func (i *Inventory) Total() int64 { return i.Available + i.Reserved }

// NeedsReorder indica si el disponible cayó al umbral de reorden.
func (i *Inventory) NeedsReorder() bool { return i.Available <= i.Minimum }
