package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

func TestIssueCreate_DefaultsToTodoColumn(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title: "First",
		Type:  "TASK",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusTodo, issue.Status)
	require.Equal(t, 0, issue.OrderInColumn)
	require.Equal(t, board.ProjectID, issue.ProjectID)
}

func TestIssueCreate_AppendsAtColumnTail(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)

	first := e.seedIssue(t, board.ID, "First")
	second := e.seedIssue(t, board.ID, "Second")
	third := e.seedIssue(t, board.ID, "Third")

	require.Equal(t, 0, first.OrderInColumn)
	require.Equal(t, 1, second.OrderInColumn)
	require.Equal(t, 2, third.OrderInColumn)
}

func TestIssueCreate_SeparateColumnsOrderIndependently(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	todo := e.seedIssue(t, board.ID, "Todo work")

	doing, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:  "Doing work",
		Type:   "TASK",
		Status: "DOING",
	})
	require.NoError(t, err)

	require.Equal(t, 0, todo.OrderInColumn)
	require.Equal(t, 0, doing.OrderInColumn)
}

func TestIssueCreate_Validation(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input application.CreateIssueInput
	}{
		{"empty title", application.CreateIssueInput{Type: "TASK"}},
		{"whitespace title", application.CreateIssueInput{Title: "   ", Type: "TASK"}},
		{"unknown type", application.CreateIssueInput{Title: "x", Type: "EPIC"}},
		{"unknown status", application.CreateIssueInput{Title: "x", Type: "TASK", Status: "SHIPPED"}},
		{"negative estimate", application.CreateIssueInput{Title: "x", Type: "TASK", EstimateHours: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.issues.Create(ctx, testActor, board.ID, tt.input)
			require.True(t, domain.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestIssueCreate_UnknownBoard(t *testing.T) {
	e := newEnv(t)
	e.seedBoard(t)

	_, err := e.issues.Create(context.Background(), testActor, "no-such-board", application.CreateIssueInput{
		Title: "x",
		Type:  "TASK",
	})
	require.True(t, domain.IsNotFound(err))
}

func TestIssueCreate_SprintOnDifferentBoardRejected(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	other, err := e.boards.Create(ctx, testActor, board.ProjectID, application.CreateBoardInput{
		Name: "Other",
		Type: "SCRUM",
	})
	require.NoError(t, err)
	sprint, err := e.sprints.Create(ctx, testActor, other.ID, application.CreateSprintInput{
		Name:      "Sprint 1",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-14",
	})
	require.NoError(t, err)

	_, err = e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:    "x",
		Type:     "TASK",
		SprintID: sprint.ID,
	})
	require.True(t, domain.IsInvalidArgument(err))
}

func TestUpdateStatus_MovesToDestinationTail(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	mover := e.seedIssue(t, board.ID, "Mover")

	// Occupy two slots in the DOING column first.
	for _, title := range []string{"Busy 1", "Busy 2"} {
		_, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
			Title:  title,
			Type:   "TASK",
			Status: "DOING",
		})
		require.NoError(t, err)
	}

	moved, err := e.issues.UpdateStatus(ctx, testActor, mover.ID, "DOING")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDoing, moved.Status)
	require.Equal(t, 2, moved.OrderInColumn)
}

func TestUpdateStatus_SameStatusKeepsPosition(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	e.seedIssue(t, board.ID, "First")
	second := e.seedIssue(t, board.ID, "Second")

	updated, err := e.issues.UpdateStatus(ctx, testActor, second.ID, "TODO")
	require.NoError(t, err)
	require.Equal(t, 1, updated.OrderInColumn)
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Hopper")

	// No workflow graph: DONE back to TODO is as legal as forward moves.
	for _, status := range []string{"DONE", "TODO", "QA", "BLOCKED"} {
		updated, err := e.issues.UpdateStatus(ctx, testActor, issue.ID, status)
		require.NoError(t, err)
		require.Equal(t, domain.IssueStatus(status), updated.Status)
	}
}

func TestUpdateStatus_UnknownIssue(t *testing.T) {
	e := newEnv(t)
	e.seedBoard(t)

	_, err := e.issues.UpdateStatus(context.Background(), testActor, "missing", "DONE")
	require.True(t, domain.IsNotFound(err))
}

func TestListByBoard_SortedByColumnOrder(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	a := e.seedIssue(t, board.ID, "A")
	b := e.seedIssue(t, board.ID, "B")
	c := e.seedIssue(t, board.ID, "C")

	// Move A to the tail, shuffling the column.
	_, err := e.issues.Update(ctx, testActor, a.ID, domain.IssuePatch{
		OrderInColumn: domain.Some(10),
	})
	require.NoError(t, err)

	issues, err := e.issues.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	require.Equal(t, b.ID, issues[0].ID)
	require.Equal(t, c.ID, issues[1].ID)
	require.Equal(t, a.ID, issues[2].ID)
	for i := 1; i < len(issues); i++ {
		require.LessOrEqual(t, issues[i-1].OrderInColumn, issues[i].OrderInColumn)
	}
}

func TestListByBoard_UnknownBoard(t *testing.T) {
	e := newEnv(t)
	e.seedBoard(t)

	_, err := e.issues.ListByBoard(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}

func TestIssueUpdate_PartialPatchLeavesOtherFields(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:         "Original",
		Description:   "Long description",
		Type:          "STORY",
		EstimateHours: 8,
	})
	require.NoError(t, err)

	updated, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		Title: domain.Some("Renamed"),
	})
	require.NoError(t, err)

	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "Long description", updated.Description)
	require.Equal(t, domain.TypeStory, updated.Type)
	require.Equal(t, 8, updated.EstimateHours)
}

func TestIssueUpdate_ClearSprintWithPresentEmpty(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	sprint, err := e.sprints.Create(ctx, testActor, board.ID, application.CreateSprintInput{
		Name:      "Sprint 1",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-14",
	})
	require.NoError(t, err)

	issue, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:    "Sprinted",
		Type:     "TASK",
		SprintID: sprint.ID,
	})
	require.NoError(t, err)

	updated, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		SprintID: domain.Some(""),
	})
	require.NoError(t, err)
	require.Empty(t, updated.SprintID)
}

func TestIssueUpdate_InvalidFieldRejectsWholePatch(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Original")

	_, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		Title:  domain.Some("Renamed"),
		Status: domain.Some("SHIPPED"),
	})
	require.True(t, domain.IsInvalidArgument(err))

	// The valid title change must not have been applied.
	fetched, err := e.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, "Original", fetched.Title)
}

func TestIssueUpdate_StaleVersionConflicts(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Contended")

	_, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		Title: domain.Some("First writer"),
	})
	require.NoError(t, err)

	_, err = e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		Title:           domain.Some("Second writer"),
		ExpectedVersion: domain.Some(issue.Version),
	})
	require.True(t, domain.IsConflict(err))
}

func TestIssueUpdate_CrossColumnMoveLandsAtTail(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Mover")
	_, err := e.issues.Create(ctx, testActor, board.ID, application.CreateIssueInput{
		Title:  "Occupant",
		Type:   "TASK",
		Status: "REVIEW",
	})
	require.NoError(t, err)

	updated, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		Status: domain.Some("REVIEW"),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusReview, updated.Status)
	require.Equal(t, 1, updated.OrderInColumn)
}

func TestIssueDelete_RemovesIssue(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Doomed")
	require.NoError(t, e.issues.Delete(ctx, testActor, issue.ID))

	_, err := e.issues.Get(ctx, issue.ID)
	require.True(t, domain.IsNotFound(err))

	require.True(t, domain.IsNotFound(e.issues.Delete(ctx, testActor, issue.ID)))
}

func TestIssueNotes_AppendAndList(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Discussed")

	note, err := e.issues.AddNote(ctx, testActor, issue.ID, "looks good")
	require.NoError(t, err)
	require.Equal(t, issue.ID, note.IssueID)
	require.Equal(t, testActor, note.AuthorID)

	_, err = e.issues.AddNote(ctx, testActor, issue.ID, "second pass")
	require.NoError(t, err)

	notes, err := e.issues.ListNotes(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "looks good", notes[0].Body)
}
