package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// seedFixtures creates the organization/project/board chain an issue's
// foreign keys require and returns the board.
func seedFixtures(t *testing.T, store *Store) *domain.Board {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	org := newTestOrg(t, store)
	project := &domain.Project{
		ID:             uuid.NewString(),
		OrganizationID: org.ID,
		Name:           "Apollo",
		StartDate:      now,
		EndDate:        now.AddDate(0, 6, 0),
		Status:         domain.ProjectActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.Projects().Create(ctx, project))

	board := &domain.Board{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Name:      "Main",
		Type:      domain.BoardKanban,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Boards().Create(ctx, board))
	return board
}

func newTestIssue(board *domain.Board, title string, status domain.IssueStatus, order int) *domain.Issue {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Issue{
		ID:            uuid.NewString(),
		ProjectID:     board.ProjectID,
		BoardID:       board.ID,
		Title:         title,
		Type:          domain.TypeTask,
		Status:        status,
		OrderInColumn: order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestIssueRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	issue := newTestIssue(board, "Round trip", domain.StatusTodo, 0)
	issue.Description = "details"
	issue.EstimateHours = 8
	require.NoError(t, store.Issues().Create(ctx, issue))

	fetched, err := store.Issues().Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, issue.Title, fetched.Title)
	require.Equal(t, issue.Description, fetched.Description)
	require.Equal(t, issue.EstimateHours, fetched.EstimateHours)
	require.Empty(t, fetched.SprintID)
	require.Empty(t, fetched.AssigneeID)
	require.Equal(t, int64(0), fetched.Version)
	require.Equal(t, issue.CreatedAt.Unix(), fetched.CreatedAt.Unix())
}

func TestIssueRepo_UpdateBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	issue := newTestIssue(board, "Versioned", domain.StatusTodo, 0)
	require.NoError(t, store.Issues().Create(ctx, issue))

	issue.Title = "Versioned v2"
	require.NoError(t, store.Issues().Update(ctx, issue))
	require.Equal(t, int64(1), issue.Version)

	fetched, err := store.Issues().Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), fetched.Version)
	require.Equal(t, "Versioned v2", fetched.Title)
}

func TestIssueRepo_UpdateStaleVersionConflicts(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	issue := newTestIssue(board, "Contended", domain.StatusTodo, 0)
	require.NoError(t, store.Issues().Create(ctx, issue))

	stale := *issue
	issue.Title = "Winner"
	require.NoError(t, store.Issues().Update(ctx, issue))

	stale.Title = "Loser"
	err := store.Issues().Update(ctx, &stale)
	require.True(t, domain.IsConflict(err), "got %v", err)
}

func TestIssueRepo_UpdateMissingRowNotFound(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	ghost := newTestIssue(board, "Ghost", domain.StatusTodo, 0)
	err := store.Issues().Update(ctx, ghost)
	require.True(t, domain.IsNotFound(err))
}

func TestIssueRepo_ListByBoardOrdering(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	// Insert out of order, including a position collision.
	third := newTestIssue(board, "Third", domain.StatusTodo, 5)
	first := newTestIssue(board, "First", domain.StatusTodo, 1)
	second := newTestIssue(board, "Second", domain.StatusDoing, 1)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	for _, issue := range []*domain.Issue{third, first, second} {
		require.NoError(t, store.Issues().Create(ctx, issue))
	}

	issues, err := store.Issues().ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	require.Equal(t, "First", issues[0].Title)
	require.Equal(t, "Second", issues[1].Title)
	require.Equal(t, "Third", issues[2].Title)
}

func TestIssueRepo_CountInColumn(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Issues().Create(ctx, newTestIssue(board, "Todo", domain.StatusTodo, i)))
	}
	require.NoError(t, store.Issues().Create(ctx, newTestIssue(board, "Doing", domain.StatusDoing, 0)))

	count, err := store.Issues().CountInColumn(ctx, board.ID, domain.StatusTodo)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	count, err = store.Issues().CountInColumn(ctx, board.ID, domain.StatusDone)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestIssueRepo_DeleteCascadesFromBoard(t *testing.T) {
	db := newTestDB(t)
	store := db.Store()
	board := seedFixtures(t, store)
	ctx := context.Background()

	issue := newTestIssue(board, "Cascaded", domain.StatusTodo, 0)
	require.NoError(t, store.Issues().Create(ctx, issue))

	require.NoError(t, store.Boards().Delete(ctx, board.ID))

	_, err := store.Issues().Get(ctx, issue.ID)
	require.True(t, domain.IsNotFound(err))
}
