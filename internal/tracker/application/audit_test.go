package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/infrastructure/sqlite"
	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

func TestAudit_CreateRecordsSnapshot(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Audited")

	entries, err := e.audit.ForEntity(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.Equal(t, application.ActionCreate, entry.Action)
	require.Equal(t, application.EntityIssue, entry.EntityType)
	require.Equal(t, testActor, entry.ActorID)
	require.Empty(t, entry.BeforeState)

	var after domain.Issue
	require.NoError(t, json.Unmarshal([]byte(entry.AfterState), &after))
	require.Equal(t, "Audited", after.Title)
}

func TestAudit_DeleteRecordsBeforeState(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Doomed")
	require.NoError(t, e.issues.Delete(ctx, testActor, issue.ID))

	entries, err := e.audit.ForEntity(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	del := entries[1]
	require.Equal(t, application.ActionDelete, del.Action)
	require.Empty(t, del.AfterState)
	require.Contains(t, del.BeforeState, "Doomed")
}

func TestAudit_EntriesInMutationOrder(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Tracked")
	_, err := e.issues.UpdateStatus(ctx, testActor, issue.ID, "DOING")
	require.NoError(t, err)
	_, err = e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{Title: domain.Some("Renamed")})
	require.NoError(t, err)

	entries, err := e.audit.ForEntity(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, application.ActionCreate, entries[0].Action)
	require.Equal(t, application.ActionStatusChange, entries[1].Action)
	require.Equal(t, application.ActionUpdate, entries[2].Action)
}

func TestAudit_SnapshotTruncation(t *testing.T) {
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := db.Store()
	recorder := application.NewAuditRecorder(200)
	e := &env{
		store:     store,
		directory: application.NewDirectoryService(store, recorder),
		projects:  application.NewProjectService(store, recorder),
		boards:    application.NewBoardService(store, recorder),
		issues:    application.NewIssueService(store, recorder),
		sprints:   application.NewSprintService(store, recorder),
		timeLogs:  application.NewTimeLogService(store, recorder),
		query:     application.NewQueryService(store),
		audit:     application.NewAuditService(store),
	}
	board := e.seedBoard(t)
	ctx := context.Background()

	issue, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:       "Verbose",
		Description: strings.Repeat("description ", 100),
		Type:        "TASK",
	})
	require.NoError(t, err)

	entries, err := e.audit.ForEntity(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	after := entries[0].AfterState
	require.LessOrEqual(t, len(after), 200)
	require.True(t, strings.HasSuffix(after, "...[truncated]"), "got %q", after)
}

func TestAudit_FailedLookupLeavesNoTrace(t *testing.T) {
	e := newEnv(t)
	e.seedBoard(t)
	ctx := context.Background()

	_, err := e.issues.UpdateStatus(ctx, testActor, "missing", "DONE")
	require.True(t, domain.IsNotFound(err))

	entries, err := e.audit.ForEntityType(ctx, application.EntityIssue)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// faultStore wraps a real store and fails every audit append, so tests can
// prove a mutation and its audit row commit or roll back together.
type faultStore struct {
	application.Store
}

type faultTx struct {
	application.Tx
}

type failingAuditRepo struct {
	application.AuditRepository
}

func (s *faultStore) RunInTransaction(ctx context.Context, fn func(tx application.Tx) error) error {
	return s.Store.RunInTransaction(ctx, func(tx application.Tx) error {
		return fn(&faultTx{Tx: tx})
	})
}

func (t *faultTx) Audit() application.AuditRepository {
	return &failingAuditRepo{AuditRepository: t.Tx.Audit()}
}

func (r *failingAuditRepo) Append(ctx context.Context, entry *domain.AuditLog) error {
	return errors.New("audit store unavailable")
}

func TestAudit_FailedAppendRollsBackMutation(t *testing.T) {
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	healthy := newEnvWithStore(db.Store())
	board := healthy.seedBoard(t)
	ctx := context.Background()

	broken := newEnvWithStore(&faultStore{Store: db.Store()})
	_, err = broken.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title: "Never lands",
		Type:  "TASK",
	})
	require.Error(t, err)

	// The issue write must have rolled back with the audit failure.
	issues, err := healthy.issues.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Empty(t, issues)

	entries, err := healthy.audit.ForEntityType(ctx, application.EntityIssue)
	require.NoError(t, err)
	require.Empty(t, entries)
}
