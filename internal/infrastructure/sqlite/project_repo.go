package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type projectRepo struct {
	q querier
}

var _ application.ProjectRepository = (*projectRepo)(nil)

const projectColumns = `id, organization_id, name, description, start_date, end_date, status, created_at, updated_at`

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OrganizationID, p.Name, p.Description, p.StartDate.Unix(), p.EndDate.Unix(),
		string(p.Status), p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *projectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	var row projectRow
	err := r.q.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	).Scan(&row.ID, &row.OrganizationID, &row.Name, &row.Description, &row.StartDate, &row.EndDate,
		&row.Status, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return row.toDomain(), nil
}

func (r *projectRepo) ListByOrganization(ctx context.Context, orgID string) ([]*domain.Project, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE organization_id = ? ORDER BY created_at, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*domain.Project
	for rows.Next() {
		var row projectRow
		if err := rows.Scan(&row.ID, &row.OrganizationID, &row.Name, &row.Description, &row.StartDate,
			&row.EndDate, &row.Status, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, row.toDomain())
	}
	return projects, rows.Err()
}

func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.StartDate.Unix(), p.EndDate.Unix(), string(p.Status), p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "project", ID: p.ID}
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "project", ID: id}
	}
	return nil
}
