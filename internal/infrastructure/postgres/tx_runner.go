package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and requisition.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ requisition.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	invRepo := NewInventoryRepository(tx)
	alertRepo := NewStockAlertRepository(tx)

	if err := fn(movRepo, invRepo, alertRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWorkflow inicia una transacción con los repos que necesita una
// transición del workflow de requisiciones: estado, ledger y auditoría
// se confirman o revierten como una sola unidad.
func (r *TxRunner) RunWorkflow(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reqRepo := NewRequisitionRepository(tx)
	invRepo := NewInventoryRepository(tx)
	movRepo := NewMovementRepository(tx)
	auditRepo := NewAuditRepository(tx)
	alertRepo := NewStockAlertRepository(tx)

	if err := fn(reqRepo, invRepo, movRepo, auditRepo, alertRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
