package postgres

import (
	"context"
	"fmt"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL.
// Append-only: la tabla no admite UPDATE ni DELETE.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Acepta pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Create(entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, subject_type, subject_id, action, actor_id, description, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SubjectType, entry.SubjectID, entry.Action, entry.ActorID,
		entry.Description, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListBySubject devuelve el historial de un objeto en orden cronológico.
func (r *AuditRepo) ListBySubject(subjectType, subjectID string) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, subject_type, subject_id, action, actor_id, description, timestamp
		FROM audit_entries WHERE subject_type = $1 AND subject_id = $2
		ORDER BY timestamp, id`
	return r.list(query, subjectType, subjectID)
}

func (r *AuditRepo) List(limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, subject_type, subject_id, action, actor_id, description, timestamp
		FROM audit_entries ORDER BY timestamp DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *AuditRepo) list(query string, args ...any) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.SubjectType, &e.SubjectID, &e.Action, &e.ActorID, &e.Description, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
