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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Acepta pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, organization_id, name, sku, description, category, unit_of_measure, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrganizationID, item.Name, item.SKU, item.Description, item.Category,
		item.UnitOfMeasure, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, organization_id, name, sku, description, category, unit_of_measure, is_active, created_at, updated_at
		FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *ItemRepo) GetBySKU(organizationID, sku string) (*entity.Item, error) {
	query := `
		SELECT id, organization_id, name, sku, description, category, unit_of_measure, is_active, created_at, updated_at
		FROM items WHERE organization_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, organizationID, sku))
}

func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, category = $4, unit_of_measure = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Category, item.UnitOfMeasure,
		item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (r *ItemRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, organization_id, name, sku, description, category, unit_of_measure, is_active, created_at, updated_at
		FROM items WHERE organization_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.Name, &i.SKU, &i.Description, &i.Category, &i.UnitOfMeasure, &i.IsActive, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.OrganizationID, &i.Name, &i.SKU, &i.Description, &i.Category, &i.UnitOfMeasure, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}
