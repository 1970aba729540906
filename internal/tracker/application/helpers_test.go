package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/infrastructure/sqlite"
	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

const testActor = "test-actor"

// env wires the full service stack against a throwaway SQLite database.
type env struct {
	store     application.Store
	directory *application.DirectoryService
	projects  *application.ProjectService
	boards    *application.BoardService
	sprints   *application.SprintService
	issues    *application.IssueService
	timeLogs  *application.TimeLogService
	query     *application.QueryService
	audit     *application.AuditService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newEnvWithStore(db.Store())
}

func newEnvWithStore(store application.Store) *env {
	recorder := application.NewAuditRecorder(application.DefaultSnapshotMaxBytes)
	return &env{
		store:     store,
		directory: application.NewDirectoryService(store, recorder),
		projects:  application.NewProjectService(store, recorder),
		boards:    application.NewBoardService(store, recorder),
		sprints:   application.NewSprintService(store, recorder),
		issues:    application.NewIssueService(store, recorder),
		timeLogs:  application.NewTimeLogService(store, recorder),
		query:     application.NewQueryService(store),
		audit:     application.NewAuditService(store),
	}
}

// seedBoard creates an organization, a project, and a kanban board, and
// returns the board. Most issue tests start here.
func (e *env) seedBoard(t *testing.T) *domain.Board {
	t.Helper()
	ctx := context.Background()

	org, err := e.directory.CreateOrganization(ctx, testActor, "Acme")
	require.NoError(t, err)

	project, err := e.projects.Create(ctx, testActor, org.ID, application.CreateProjectInput{
		Name:      "Apollo",
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	})
	require.NoError(t, err)

	board, err := e.boards.Create(ctx, testActor, project.ID, application.CreateBoardInput{
		Name: "Main",
		Type: "KANBAN",
	})
	require.NoError(t, err)
	return board
}

func (e *env) seedUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := e.directory.CreateUser(context.Background(), testActor, application.CreateUserInput{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return user
}

func (e *env) seedIssue(t *testing.T, boardID, title string) *domain.Issue {
	t.Helper()
	issue, err := e.issues.Create(context.Background(), testActor, boardID, application.CreateIssueInput{
		Title: title,
		Type:  "TASK",
	})
	require.NoError(t, err)
	return issue
}
