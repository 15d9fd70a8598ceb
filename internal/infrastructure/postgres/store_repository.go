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

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, organization_id, department_id, name, code, store_type,
	contact_person, contact_email, contact_phone, address, is_active, created_at, updated_at`

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.OrganizationID, nullable(store.DepartmentID), store.Name, store.Code,
		store.StoreType, store.ContactPerson, store.ContactEmail, store.ContactPhone,
		store.Address, store.IsActive, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	var s entity.Store
	var deptID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.OrganizationID, &deptID, &s.Name, &s.Code, &s.StoreType,
		&s.ContactPerson, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	if deptID != nil {
		s.DepartmentID = *deptID
	}
	return &s, nil
}

func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, store_type = $3, contact_person = $4, contact_email = $5,
		    contact_phone = $6, address = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.StoreType, store.ContactPerson, store.ContactEmail,
		store.ContactPhone, store.Address, store.IsActive, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

func (r *StoreRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + `
		FROM stores WHERE organization_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		var deptID *string
		if err := rows.Scan(
			&s.ID, &s.OrganizationID, &deptID, &s.Name, &s.Code, &s.StoreType,
			&s.ContactPerson, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		if deptID != nil {
			s.DepartmentID = *deptID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StoreRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}
