package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

const stockAlertColumns = `id, inventory_id, alert_type, severity, message,
	is_resolved, resolved_by, resolved_at, created_at`

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (` + stockAlertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.InventoryID, alert.AlertType, alert.Severity, alert.Message,
		alert.IsResolved, nullable(alert.ResolvedBy), alert.ResolvedAt, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	query := `SELECT ` + stockAlertColumns + ` FROM stock_alerts WHERE id = $1`
	var a entity.StockAlert
	var resolvedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.InventoryID, &a.AlertType, &a.Severity, &a.Message,
		&a.IsResolved, &resolvedBy, &a.ResolvedAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock alert: %w", err)
	}
	if resolvedBy != nil {
		a.ResolvedBy = *resolvedBy
	}
	return &a, nil
}

func (r *StockAlertRepo) ListUnresolved(limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + stockAlertColumns + `
		FROM stock_alerts WHERE NOT is_resolved
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *StockAlertRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + stockAlertColumns + `
		FROM stock_alerts WHERE inventory_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, inventoryID, limit, offset)
}

// Resolve marca una alerta como resuelta. Idempotente: resolver una alerta
// ya resuelta no cambia nada.
func (r *StockAlertRepo) Resolve(id, resolvedBy string, at time.Time) error {
	query := `
		UPDATE stock_alerts
		SET is_resolved = true, resolved_by = $2, resolved_at = $3
		WHERE id = $1 AND NOT is_resolved`
	_, err := r.q.Exec(context.Background(), query, id, resolvedBy, at)
	if err != nil {
		return fmt.Errorf("resolve stock alert: %w", err)
	}
	return nil
}

func (r *StockAlertRepo) list(query string, args ...any) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		var resolvedBy *string
		if err := rows.Scan(
			&a.ID, &a.InventoryID, &a.AlertType, &a.Severity, &a.Message,
			&a.IsResolved, &resolvedBy, &a.ResolvedAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		if resolvedBy != nil {
			a.ResolvedBy = *resolvedBy
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
