package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type issueRepo struct {
	q querier
}

var _ application.IssueRepository = (*issueRepo)(nil)

const issueColumns = `id, project_id, board_id, sprint_id, assignee_id, title, description, type, status,
	estimate_hours, time_spent_hours, order_in_column, version, created_at, updated_at`

func (r *issueRepo) Create(ctx context.Context, i *domain.Issue) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO issues (`+issueColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.ProjectID, i.BoardID, toNullable(i.SprintID), toNullable(i.AssigneeID),
		i.Title, i.Description, string(i.Type), string(i.Status),
		i.EstimateHours, i.TimeSpent, i.OrderInColumn, i.Version,
		i.CreatedAt.Unix(), i.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *issueRepo) Get(ctx context.Context, id string) (*domain.Issue, error) {
	row, err := r.scanOne(r.q.QueryRowContext(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "issue", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return row.toDomain(), nil
}

// ListByBoard returns the board's issues sorted by column position. The
// secondary keys make column rendering reproducible when positions collide.
func (r *issueRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issues
		 WHERE board_id = ?
		 ORDER BY order_in_column, created_at, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list issues by board: %w", err)
	}
	return r.collect(rows)
}

func (r *issueRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Issue, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE sprint_id = ?`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list issues by sprint: %w", err)
	}
	return r.collect(rows)
}

func (r *issueRepo) CountInColumn(ctx context.Context, boardID string, status domain.IssueStatus) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE board_id = ? AND status = ?`,
		boardID, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count issues in column: %w", err)
	}
	return count, nil
}

// Update writes the issue only if its stored version matches i.Version,
// then bumps the version. A stale version is a conflict; a missing row is
// not found.
func (r *issueRepo) Update(ctx context.Context, i *domain.Issue) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE issues
		 SET sprint_id = ?, assignee_id = ?, title = ?, description = ?, type = ?, status = ?,
		     estimate_hours = ?, time_spent_hours = ?, order_in_column = ?, version = version + 1,
		     updated_at = ?
		 WHERE id = ? AND version = ?`,
		toNullable(i.SprintID), toNullable(i.AssigneeID), i.Title, i.Description,
		string(i.Type), string(i.Status), i.EstimateHours, i.TimeSpent, i.OrderInColumn,
		i.UpdatedAt.Unix(), i.ID, i.Version,
	)
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update issue rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues WHERE id = ?`, i.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check issue existence: %w", err)
		}
		if exists == 0 {
			return &domain.NotFoundError{Kind: "issue", ID: i.ID}
		}
		return &domain.ConflictError{Kind: "issue", ID: i.ID}
	}
	i.Version++
	return nil
}

func (r *issueRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete issue rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "issue", ID: id}
	}
	return nil
}

func (r *issueRepo) scanOne(row *sql.Row) (*issueRow, error) {
	var m issueRow
	err := row.Scan(&m.ID, &m.ProjectID, &m.BoardID, &m.SprintID, &m.AssigneeID,
		&m.Title, &m.Description, &m.Type, &m.Status,
		&m.EstimateHours, &m.TimeSpent, &m.OrderInColumn, &m.Version,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *issueRepo) collect(rows *sql.Rows) ([]*domain.Issue, error) {
	defer func() { _ = rows.Close() }()

	var issues []*domain.Issue
	for rows.Next() {
		var m issueRow
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.BoardID, &m.SprintID, &m.AssigneeID,
			&m.Title, &m.Description, &m.Type, &m.Status,
			&m.EstimateHours, &m.TimeSpent, &m.OrderInColumn, &m.Version,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan issue row: %w", err)
		}
		issues = append(issues, m.toDomain())
	}
	return issues, rows.Err()
}
