package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alphawork/alphawork/internal/tracker/application"
)

// querier is satisfied by *sql.DB, *sql.Conn, and *sql.Tx, letting every
// repository run unchanged inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// repos bundles the repository implementations over one querier.
type repos struct {
	q querier
}

func (r *repos) Organizations() application.OrganizationRepository { return &organizationRepo{q: r.q} }
func (r *repos) Users() application.UserRepository                 { return &userRepo{q: r.q} }
func (r *repos) Projects() application.ProjectRepository           { return &projectRepo{q: r.q} }
func (r *repos) Boards() application.BoardRepository               { return &boardRepo{q: r.q} }
func (r *repos) Sprints() application.SprintRepository             { return &sprintRepo{q: r.q} }
func (r *repos) Issues() application.IssueRepository               { return &issueRepo{q: r.q} }
func (r *repos) TimeLogs() application.TimeLogRepository           { return &timeLogRepo{q: r.q} }
func (r *repos) Notes() application.NoteRepository                 { return &noteRepo{q: r.q} }
func (r *repos) Audit() application.AuditRepository                { return &auditRepo{q: r.q} }

// Store implements application.Store on SQLite. Reads outside a
// transaction auto-commit; mutations go through RunInTransaction.
type Store struct {
	repos
	db *sql.DB
}

// Compile-time check that Store implements the application port.
var _ application.Store = (*Store)(nil)

// NewStore wraps an open connection. The schema must already be migrated.
func NewStore(db *sql.DB) *Store {
	return &Store{repos: repos{q: db}, db: db}
}

// RunInTransaction executes fn within one database transaction on a
// dedicated connection.
//
// BEGIN IMMEDIATE takes the write lock up front so competing writers queue
// on the busy timeout instead of deadlocking mid-transaction. The
// transaction commits only if fn returns nil; an error or panic rolls
// everything back, which is what makes the mutation+audit pair atomic.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx application.Tx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := beginImmediate(ctx, conn); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			// Background context so rollback still runs when ctx is canceled.
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	if err := fn(&repos{q: conn}); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// beginImmediate starts an IMMEDIATE transaction, retrying briefly when the
// database is locked by another writer.
func beginImmediate(ctx context.Context, conn *sql.Conn) error {
	const attempts = 5
	backoff := 10 * time.Millisecond

	var err error
	for i := 0; i < attempts; i++ {
		if _, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
