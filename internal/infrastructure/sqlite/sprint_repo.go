package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type sprintRepo struct {
	q querier
}

var _ application.SprintRepository = (*sprintRepo)(nil)

const sprintColumns = `id, board_id, name, goal, start_date, end_date, status, created_at, updated_at`

func (r *sprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sprints (`+sprintColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.BoardID, s.Name, s.Goal, s.StartDate.Unix(), s.EndDate.Unix(),
		string(s.Status), s.CreatedAt.Unix(), s.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert sprint: %w", err)
	}
	return nil
}

func (r *sprintRepo) Get(ctx context.Context, id string) (*domain.Sprint, error) {
	var row sprintRow
	err := r.q.QueryRowContext(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE id = ?`, id,
	).Scan(&row.ID, &row.BoardID, &row.Name, &row.Goal, &row.StartDate, &row.EndDate,
		&row.Status, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "sprint", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find sprint: %w", err)
	}
	return row.toDomain(), nil
}

func (r *sprintRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE board_id = ? ORDER BY created_at, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sprints []*domain.Sprint
	for rows.Next() {
		var row sprintRow
		if err := rows.Scan(&row.ID, &row.BoardID, &row.Name, &row.Goal, &row.StartDate,
			&row.EndDate, &row.Status, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sprint row: %w", err)
		}
		sprints = append(sprints, row.toDomain())
	}
	return sprints, rows.Err()
}

func (r *sprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE sprints SET name = ?, goal = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		s.Name, s.Goal, s.StartDate.Unix(), s.EndDate.Unix(), string(s.Status), s.UpdatedAt.Unix(), s.ID,
	)
	if err != nil {
		return fmt.Errorf("update sprint: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sprint rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "sprint", ID: s.ID}
	}
	return nil
}

func (r *sprintRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM sprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sprint: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sprint rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "sprint", ID: id}
	}
	return nil
}
