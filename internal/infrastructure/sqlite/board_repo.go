package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type boardRepo struct {
	q querier
}

var _ application.BoardRepository = (*boardRepo)(nil)

func (r *boardRepo) Create(ctx context.Context, b *domain.Board) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO boards (id, project_id, name, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.Name, string(b.Type), b.CreatedAt.Unix(), b.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

func (r *boardRepo) Get(ctx context.Context, id string) (*domain.Board, error) {
	var row boardRow
	err := r.q.QueryRowContext(ctx,
		`SELECT id, project_id, name, type, created_at, updated_at FROM boards WHERE id = ?`, id,
	).Scan(&row.ID, &row.ProjectID, &row.Name, &row.Type, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "board", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	return row.toDomain(), nil
}

func (r *boardRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Board, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, project_id, name, type, created_at, updated_at
		 FROM boards WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var boards []*domain.Board
	for rows.Next() {
		var row boardRow
		if err := rows.Scan(&row.ID, &row.ProjectID, &row.Name, &row.Type, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan board row: %w", err)
		}
		boards = append(boards, row.toDomain())
	}
	return boards, rows.Err()
}

func (r *boardRepo) Update(ctx context.Context, b *domain.Board) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE boards SET name = ?, type = ?, updated_at = ? WHERE id = ?`,
		b.Name, string(b.Type), b.UpdatedAt.Unix(), b.ID,
	)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update board rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "board", ID: b.ID}
	}
	return nil
}

func (r *boardRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "board", ID: id}
	}
	return nil
}
