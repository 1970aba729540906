package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

func TestBoardIssues_ResolvesAssigneeNames(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	user := e.seedUser(t, "ada@example.com")
	ctx := context.Background()

	_, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:      "Assigned",
		Type:       "TASK",
		AssigneeID: user.ID,
	})
	require.NoError(t, err)
	e.seedIssue(t, board.ID, "Unassigned")

	views, err := e.query.BoardIssues(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "Ada Lovelace", views[0].AssigneeName)
	require.Empty(t, views[1].AssigneeName)
}

func TestBoardIssues_UnknownBoard(t *testing.T) {
	e := newEnv(t)
	e.seedBoard(t)

	_, err := e.query.BoardIssues(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}

func TestOverview_CountsIssuesByStatus(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	e.seedIssue(t, board.ID, "One")
	e.seedIssue(t, board.ID, "Two")
	_, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:  "Active",
		Type:   "TASK",
		Status: "DOING",
	})
	require.NoError(t, err)

	overview, err := e.query.Overview(ctx, board.ProjectID)
	require.NoError(t, err)
	require.Len(t, overview.Boards, 1)

	counts := overview.Boards[0].IssueCounts
	require.Equal(t, 2, counts[domain.StatusTodo])
	require.Equal(t, 1, counts[domain.StatusDoing])
	require.Zero(t, counts[domain.StatusDone])
}

func TestOverview_UnknownProject(t *testing.T) {
	e := newEnv(t)

	_, err := e.query.Overview(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}
