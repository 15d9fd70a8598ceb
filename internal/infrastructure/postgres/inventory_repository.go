package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, item_id, store_id, available, reserved, minimum, maximum,
	status, location, created_at, updated_at, last_checked`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Las variantes ForUpdate agregan SELECT ... FOR UPDATE y deben usarse solo
// dentro de una transacción del TxRunner: son el candado de fila que
// serializa la sección leer-validar-escribir de los contadores.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ItemID, inv.StoreID, inv.Available, inv.Reserved, inv.Minimum, inv.Maximum,
		inv.Status, inv.Location, inv.CreatedAt, inv.UpdatedAt, inv.LastChecked,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *InventoryRepo) GetByItemAndStore(itemID, storeID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE item_id = $1 AND store_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemID, storeID))
}

func (r *InventoryRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *InventoryRepo) GetByItemAndStoreForUpdate(itemID, storeID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE item_id = $1 AND store_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemID, storeID))
}

func (r *InventoryRepo) Update(inv *entity.Inventory) error {
	query := `
		UPDATE inventories
		SET available = $2, reserved = $3, minimum = $4, maximum = $5, status = $6,
		    location = $7, updated_at = $8, last_checked = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Available, inv.Reserved, inv.Minimum, inv.Maximum, inv.Status,
		inv.Location, inv.UpdatedAt, inv.LastChecked,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventories WHERE store_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, storeID, limit, offset)
}

func (r *InventoryRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Inventory, error) {
	query := `
		SELECT i.id, i.item_id, i.store_id, i.available, i.reserved, i.minimum, i.maximum,
		       i.status, i.location, i.created_at, i.updated_at, i.last_checked
		FROM inventories i
		JOIN stores s ON s.id = i.store_id
		WHERE s.organization_id = $1
		ORDER BY i.updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, organizationID, limit, offset)
}

func (r *InventoryRepo) list(query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(
			&inv.ID, &inv.ItemID, &inv.StoreID, &inv.Available, &inv.Reserved,
			&inv.Minimum, &inv.Maximum, &inv.Status, &inv.Location,
			&inv.CreatedAt, &inv.UpdatedAt, &inv.LastChecked,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) scanOne(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.ItemID, &inv.StoreID, &inv.Available, &inv.Reserved,
		&inv.Minimum, &inv.Maximum, &inv.Status, &inv.Location,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.LastChecked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}
