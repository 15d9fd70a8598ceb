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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, organization_id, department_id, email, password_hash, full_name, role,
	is_active, is_suspended, email_notifications, notification_level, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.OrganizationID, nullable(user.DepartmentID), user.Email, user.PasswordHash,
		user.FullName, user.Role, user.IsActive, user.IsSuspended,
		user.EmailNotifications, user.NotificationLevel, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindByEmail obtiene un usuario por email (único en todo el sistema).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, full_name = $4, role = $5, department_id = $6,
		    is_active = $7, is_suspended = $8, email_notifications = $9, notification_level = $10,
		    updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, nullable(user.DepartmentID),
		user.IsActive, user.IsSuspended, user.EmailNotifications, user.NotificationLevel,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByOrganization lista usuarios de una organización con paginación.
func (r *UserRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, organizationID, limit, offset)
}

// ListByRole lista usuarios de una organización con un rol dado.
func (r *UserRepo) ListByRole(organizationID, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE organization_id = $1 AND role = $2
		ORDER BY full_name`
	return r.list(query, organizationID, role)
}

func (r *UserRepo) list(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var deptID *string
		if err := rows.Scan(
			&u.ID, &u.OrganizationID, &deptID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
			&u.IsActive, &u.IsSuspended, &u.EmailNotifications, &u.NotificationLevel,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if deptID != nil {
			u.DepartmentID = *deptID
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var deptID *string
	err := row.Scan(
		&u.ID, &u.OrganizationID, &deptID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsActive, &u.IsSuspended, &u.EmailNotifications, &u.NotificationLevel,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if deptID != nil {
		u.DepartmentID = *deptID
	}
	return &u, nil
}

// nullable convierte "" en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
