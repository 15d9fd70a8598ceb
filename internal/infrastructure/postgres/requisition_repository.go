package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

const requisitionColumns = `id, organization_id, department_id, requested_by, approved_by,
	inventory_id, quantity, priority, reason, status, created_at, updated_at`

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL.
// GetForUpdate bloquea la fila para serializar transiciones concurrentes
// sobre la misma requisición; usarlo solo dentro de una transacción.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Acepta pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.OrganizationID, req.DepartmentID, req.RequestedBy, nullable(req.ApprovedBy),
		req.InventoryID, req.Quantity, req.Priority, req.Reason, req.Status,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *RequisitionRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *RequisitionRepo) Update(req *entity.Requisition) error {
	query := `
		UPDATE requisitions
		SET approved_by = $2, priority = $3, reason = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, nullable(req.ApprovedBy), req.Priority, req.Reason, req.Status, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	return nil
}

func (r *RequisitionRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + `
		FROM requisitions WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, organizationID, limit, offset)
}

func (r *RequisitionRepo) ListByDepartment(departmentID string, limit, offset int) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + `
		FROM requisitions WHERE department_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, departmentID, limit, offset)
}

func (r *RequisitionRepo) list(query string, args ...any) ([]*entity.Requisition, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		var approvedBy *string
		if err := rows.Scan(
			&req.ID, &req.OrganizationID, &req.DepartmentID, &req.RequestedBy, &approvedBy,
			&req.InventoryID, &req.Quantity, &req.Priority, &req.Reason, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		if approvedBy != nil {
			req.ApprovedBy = *approvedBy
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func (r *RequisitionRepo) scanOne(row pgx.Row) (*entity.Requisition, error) {
	var req entity.Requisition
	var approvedBy *string
	err := row.Scan(
		&req.ID, &req.OrganizationID, &req.DepartmentID, &req.RequestedBy, &approvedBy,
		&req.InventoryID, &req.Quantity, &req.Priority, &req.Reason, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	if approvedBy != nil {
		req.ApprovedBy = *approvedBy
	}
	return &req, nil
}
