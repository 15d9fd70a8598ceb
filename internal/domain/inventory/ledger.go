// Package inventory implementa el ledger de stock: la única vía permitida
// para mutar los contadores de un Inventory es aplicar un movimiento
// tipado. El fold ordenado de todos los movimientos de un registro debe
// reproducir exactamente sus contadores (semántica de write-ahead log).
package inventory

import (
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
)

// Apply aplica el efecto de un movimiento sobre los contadores del
// inventario. Es todo-o-nada: si la precondición del tipo de movimiento no
// se cumple, retorna el error y deja los contadores intactos. Tras una
// aplicación exitosa recalcula el estado derivado.
//
// Efectos por tipo (Quantity siempre positivo):
//
//	stock_in              available += q
//	stock_out, write_off  available -= q   (requiere available >= q)
//	reserve               available -= q, reserved += q  (requiere available >= q)
//	release               reserved -= q, available += q  (requiere reserved >= q)
//	transfer              según Direction: out descuenta, in suma disponible
//	adjustment            según Direction: in suma, out descuenta disponible
func Apply(inv *entity.Inventory, mov *entity.Movement) error {
	if mov.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	q := mov.Quantity

	switch mov.Kind {
	case entity.MovementStockIn:
		inv.Available += q
	case entity.MovementStockOut, entity.MovementWriteOff:
		if inv.Available < q {
			return domain.ErrInsufficientStock
		}
		inv.Available -= q
	case entity.MovementReserve:
		if inv.Available < q {
			return domain.ErrInsufficientStock
		}
		inv.Available -= q
		inv.Reserved += q
	case entity.MovementRelease:
		if inv.Reserved < q {
			return domain.ErrInsufficientReserved
		}
		inv.Reserved -= q
		inv.Available += q
	case entity.MovementTransfer, entity.MovementAdjustment:
		if mov.Direction == entity.DirectionOut {
			if inv.Available < q {
				return domain.ErrInsufficientStock
			}
			inv.Available -= q
		} else {
			inv.Available += q
		}
	default:
		return domain.ErrInvalidInput
	}

	inv.Status = StatusFor(inv)
	return nil
}

// Replay reconstruye los contadores aplicando los movimientos en orden
// sobre un registro con contadores en cero. Falla si algún prefijo viola
// las precondiciones (lo que indicaría un ledger corrupto).
func Replay(inv *entity.Inventory, movements []*entity.Movement) error {
	inv.Available = 0
	inv.Reserved = 0
	for _, mov := range movements {
		if err := Apply(inv, mov); err != nil {
			return err
		}
	}
	return nil
}

// StatusFor calcula el estado derivado: función pura de Available vs Minimum.
func StatusFor(inv *entity.Inventory) string {
	switch {
	case inv.Available == 0:
		return entity.InventoryStatusOutOfStock
	case inv.Available <= inv.Minimum:
		return entity.InventoryStatusLowStock
	default:
		return entity.InventoryStatusAvailable
	}
}

// AlertFor devuelve la alerta que corresponde a un estado degradado, o nil
// si el estado no amerita alerta.
func AlertFor(inv *entity.Inventory) *entity.StockAlert {
	switch inv.Status {
	case entity.InventoryStatusOutOfStock:
		return &entity.StockAlert{
			InventoryID: inv.ID,
			AlertType:   entity.AlertOutOfStock,
			Severity:    entity.SeverityCritical,
			Message:     "stock agotado",
		}
	case entity.InventoryStatusLowStock:
		return &entity.StockAlert{
			InventoryID: inv.ID,
			AlertType:   entity.AlertLowStock,
			Severity:    entity.SeverityMedium,
			Message:     "stock por debajo del umbral de reorden",
		}
	}
	return nil
}
