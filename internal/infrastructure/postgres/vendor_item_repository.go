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

var _ repository.VendorItemRepository = (*VendorItemRepo)(nil)

const vendorItemColumns = `id, vendor_id, item_id, price, currency, lead_time_days,
	minimum_order_quantity, is_active, created_at, updated_at`

// VendorItemRepo implementación de VendorItemRepository sobre PostgreSQL.
// La columna price es NUMERIC y se mapea a shopspring/decimal vía el codec
// registrado en el pool.
type VendorItemRepo struct {
	q Querier
}

// NewVendorItemRepository construye el adaptador. Acepta pool o tx (Querier).
func NewVendorItemRepository(q Querier) *VendorItemRepo {
	return &VendorItemRepo{q: q}
}

func (r *VendorItemRepo) Create(vi *entity.VendorItem) error {
	query := `
		INSERT INTO vendor_items (` + vendorItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		vi.ID, vi.VendorID, vi.ItemID, vi.Price, vi.Currency, vi.LeadTimeDays,
		vi.MinimumOrderQuantity, vi.IsActive, vi.CreatedAt, vi.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor item: %w", err)
	}
	return nil
}

func (r *VendorItemRepo) GetByID(id string) (*entity.VendorItem, error) {
	query := `SELECT ` + vendorItemColumns + ` FROM vendor_items WHERE id = $1`
	var vi entity.VendorItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&vi.ID, &vi.VendorID, &vi.ItemID, &vi.Price, &vi.Currency, &vi.LeadTimeDays,
		&vi.MinimumOrderQuantity, &vi.IsActive, &vi.CreatedAt, &vi.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor item: %w", err)
	}
	return &vi, nil
}

func (r *VendorItemRepo) Update(vi *entity.VendorItem) error {
	query := `
		UPDATE vendor_items
		SET price = $2, currency = $3, lead_time_days = $4, minimum_order_quantity = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vi.ID, vi.Price, vi.Currency, vi.LeadTimeDays, vi.MinimumOrderQuantity,
		vi.IsActive, vi.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor item: %w", err)
	}
	return nil
}

func (r *VendorItemRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.VendorItem, error) {
	query := `SELECT ` + vendorItemColumns + `
		FROM vendor_items WHERE vendor_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, vendorID, limit, offset)
}

func (r *VendorItemRepo) ListByItem(itemID string) ([]*entity.VendorItem, error) {
	query := `SELECT ` + vendorItemColumns + `
		FROM vendor_items WHERE item_id = $1 AND is_active
		ORDER BY price`
	return r.list(query, itemID)
}

func (r *VendorItemRepo) list(query string, args ...any) ([]*entity.VendorItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendor items: %w", err)
	}
	defer rows.Close()
	var list []*entity.VendorItem
	for rows.Next() {
		var vi entity.VendorItem
		if err := rows.Scan(
			&vi.ID, &vi.VendorID, &vi.ItemID, &vi.Price, &vi.Currency, &vi.LeadTimeDays,
			&vi.MinimumOrderQuantity, &vi.IsActive, &vi.CreatedAt, &vi.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor item: %w", err)
		}
		list = append(list, &vi)
	}
	return list, rows.Err()
}
