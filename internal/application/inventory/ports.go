package inventory

import (
	"context"

	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// movimiento + contadores + alertas se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		invRepo repository.InventoryRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}
