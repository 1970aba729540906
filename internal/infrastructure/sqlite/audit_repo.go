package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// auditRepo is append-only: there is deliberately no update or delete.
type auditRepo struct {
	q querier
}

var _ application.AuditRepository = (*auditRepo)(nil)

const auditColumns = `id, actor_id, action, entity_type, entity_id, before_state, after_state, description, timestamp`

func (r *auditRepo) Append(ctx context.Context, e *domain.AuditLog) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO audit_logs (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActorID, e.Action, e.EntityType, e.EntityID,
		e.BeforeState, e.AfterState, e.Description, e.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (r *auditRepo) ForEntity(ctx context.Context, entityID string) ([]*domain.AuditLog, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE entity_id = ? ORDER BY seq`, entityID)
	if err != nil {
		return nil, fmt.Errorf("audit history for entity: %w", err)
	}
	return r.collect(rows)
}

func (r *auditRepo) ForEntityType(ctx context.Context, entityType string) ([]*domain.AuditLog, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE entity_type = ? ORDER BY seq`, entityType)
	if err != nil {
		return nil, fmt.Errorf("audit history for entity type: %w", err)
	}
	return r.collect(rows)
}

func (r *auditRepo) collect(rows *sql.Rows) ([]*domain.AuditLog, error) {
	defer func() { _ = rows.Close() }()

	var entries []*domain.AuditLog
	for rows.Next() {
		var m auditRow
		if err := rows.Scan(&m.ID, &m.ActorID, &m.Action, &m.EntityType, &m.EntityID,
			&m.BeforeState, &m.AfterState, &m.Description, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entries = append(entries, m.toDomain())
	}
	return entries, rows.Err()
}
