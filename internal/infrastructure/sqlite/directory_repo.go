package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type organizationRepo struct {
	q querier
}

var _ application.OrganizationRepository = (*organizationRepo)(nil)

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		org.ID, org.Name, org.CreatedAt.Unix(), org.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *organizationRepo) Get(ctx context.Context, id string) (*domain.Organization, error) {
	var row organizationRow
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM organizations WHERE id = ?`, id,
	).Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "organization", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return row.toDomain(), nil
}

func (r *organizationRepo) List(ctx context.Context) ([]*domain.Organization, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM organizations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orgs []*domain.Organization
	for rows.Next() {
		var row organizationRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization row: %w", err)
		}
		orgs = append(orgs, row.toDomain())
	}
	return orgs, rows.Err()
}

type userRepo struct {
	q querier
}

var _ application.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.FirstName, user.LastName, toNullable(user.TeamID),
		user.CreatedAt.Unix(), user.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	err := r.q.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, team_id, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&row.ID, &row.Email, &row.FirstName, &row.LastName, &row.TeamID, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *userRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, email, first_name, last_name, team_id, created_at, updated_at
		 FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var row userRow
		if err := rows.Scan(&row.ID, &row.Email, &row.FirstName, &row.LastName, &row.TeamID, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, row.toDomain())
	}
	return users, rows.Err()
}
