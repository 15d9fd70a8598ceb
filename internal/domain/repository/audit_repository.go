package repository

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para AuditEntry (DIP).
// Append-only: una entrada por transición exitosa, escrita dentro del
// mismo commit que la mutación que registra.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
	ListBySubject(subjectType, subjectID string) ([]*entity.AuditEntry, error)
	List(limit, offset int) ([]*entity.AuditEntry, error)
}
