package sqlite

import (
	"context"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type timeLogRepo struct {
	q querier
}

var _ application.TimeLogRepository = (*timeLogRepo)(nil)

func (r *timeLogRepo) Create(ctx context.Context, tl *domain.TimeLog) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO time_logs (id, issue_id, user_id, hours_spent, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tl.ID, tl.IssueID, tl.UserID, tl.HoursSpent, tl.Notes, tl.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert time log: %w", err)
	}
	return nil
}

func (r *timeLogRepo) ListByIssue(ctx context.Context, issueID string) ([]*domain.TimeLog, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, issue_id, user_id, hours_spent, notes, created_at
		 FROM time_logs WHERE issue_id = ? ORDER BY created_at, id`, issueID)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []*domain.TimeLog
	for rows.Next() {
		var m timeLogRow
		if err := rows.Scan(&m.ID, &m.IssueID, &m.UserID, &m.HoursSpent, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time log row: %w", err)
		}
		logs = append(logs, m.toDomain())
	}
	return logs, rows.Err()
}

type noteRepo struct {
	q querier
}

var _ application.NoteRepository = (*noteRepo)(nil)

func (r *noteRepo) Create(ctx context.Context, n *domain.Note) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notes (id, issue_id, author_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.IssueID, n.AuthorID, n.Body, n.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *noteRepo) ListByIssue(ctx context.Context, issueID string) ([]*domain.Note, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, issue_id, author_id, body, created_at
		 FROM notes WHERE issue_id = ? ORDER BY created_at, id`, issueID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []*domain.Note
	for rows.Next() {
		var m noteRow
		if err := rows.Scan(&m.ID, &m.IssueID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note row: %w", err)
		}
		notes = append(notes, m.toDomain())
	}
	return notes, rows.Err()
}
