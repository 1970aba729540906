// Package application contains the work-tracking services: the issue
// lifecycle engine, the audit recorder, the supporting CRUD services, and
// the read-side query layer. Services depend on the storage ports declared
// here; the sqlite implementation lives in internal/infrastructure/sqlite.
package application

import (
	"context"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// OrganizationRepository persists organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	Get(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context) ([]*domain.Organization, error)
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// BoardRepository persists boards.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	Get(ctx context.Context, id string) (*domain.Board, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id string) error
}

// SprintRepository persists sprints.
type SprintRepository interface {
	Create(ctx context.Context, sprint *domain.Sprint) error
	Get(ctx context.Context, id string) (*domain.Sprint, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, sprint *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

// IssueRepository persists issues.
//
// ListByBoard returns issues in ascending OrderInColumn with a
// deterministic tie-break (CreatedAt, then ID). Update performs an
// optimistic version check: the row is written only if its stored version
// matches issue.Version, and the version is bumped on success; a stale
// version surfaces as ConflictError, a missing row as NotFoundError.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Get(ctx context.Context, id string) (*domain.Issue, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Issue, error)
	CountInColumn(ctx context.Context, boardID string, status domain.IssueStatus) (int, error)
	Update(ctx context.Context, issue *domain.Issue) error
	Delete(ctx context.Context, id string) error
}

// TimeLogRepository persists time logs. Rows are append-only.
type TimeLogRepository interface {
	Create(ctx context.Context, tl *domain.TimeLog) error
	ListByIssue(ctx context.Context, issueID string) ([]*domain.TimeLog, error)
}

// NoteRepository persists issue notes. Rows are append-only.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListByIssue(ctx context.Context, issueID string) ([]*domain.Note, error)
}

// AuditRepository persists audit rows. Append is the only write; rows are
// never updated or deleted. Queries return rows in insertion order.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	ForEntity(ctx context.Context, entityID string) ([]*domain.AuditLog, error)
	ForEntityType(ctx context.Context, entityType string) ([]*domain.AuditLog, error)
}

// Repositories bundles access to every repository. Both the auto-commit
// store and an open transaction expose the same surface.
type Repositories interface {
	Organizations() OrganizationRepository
	Users() UserRepository
	Projects() ProjectRepository
	Boards() BoardRepository
	Sprints() SprintRepository
	Issues() IssueRepository
	TimeLogs() TimeLogRepository
	Notes() NoteRepository
	Audit() AuditRepository
}

// Tx is the repository surface scoped to one open transaction. Everything
// done through a Tx commits or rolls back together.
type Tx interface {
	Repositories
}

// Store is the entity store boundary. Reads may use the embedded
// auto-commit repositories; every mutation runs inside RunInTransaction so
// the entity write and its audit row are atomic. The callback's error (or
// panic) rolls the whole unit of work back.
type Store interface {
	Repositories
	RunInTransaction(ctx context.Context, fn func(tx Tx) error) error
}
