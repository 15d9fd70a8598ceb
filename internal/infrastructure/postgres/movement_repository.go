package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, inventory_id, kind, direction, quantity, destination_store_id,
	source_type, source_id, performed_by, notes, created_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(mov *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.InventoryID, mov.Kind, mov.Direction, mov.Quantity,
		nullable(mov.DestinationStoreID), mov.SourceType, nullable(mov.SourceID),
		mov.PerformedBy, mov.Notes, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	var destStoreID, sourceID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.InventoryID, &m.Kind, &m.Direction, &m.Quantity,
		&destStoreID, &m.SourceType, &sourceID, &m.PerformedBy, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if destStoreID != nil {
		m.DestinationStoreID = *destStoreID
	}
	if sourceID != nil {
		m.SourceID = *sourceID
	}
	return &m, nil
}

// ListByInventory devuelve los movimientos de un inventario en orden de
// aplicación (created_at, id): el mismo orden en que el fold los reproduce.
func (r *MovementRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE inventory_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`
	return r.list(query, inventoryID, limit, offset)
}

func (r *MovementRepo) ListBySource(sourceType, sourceID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at, id`
	return r.list(query, sourceType, sourceID)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var destStoreID, sourceID *string
		if err := rows.Scan(
			&m.ID, &m.InventoryID, &m.Kind, &m.Direction, &m.Quantity,
			&destStoreID, &m.SourceType, &sourceID, &m.PerformedBy, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if destStoreID != nil {
			m.DestinationStoreID = *destStoreID
		}
		if sourceID != nil {
			m.SourceID = *sourceID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
