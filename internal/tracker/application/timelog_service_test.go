package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

func TestTimeLog_AddsToIssueTotal(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	user := e.seedUser(t, "ada@example.com")
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Timed")

	_, err := e.timeLogs.Log(ctx, user.ID, issue.ID, 3, "morning")
	require.NoError(t, err)
	_, err = e.timeLogs.Log(ctx, user.ID, issue.ID, 2, "afternoon")
	require.NoError(t, err)

	fetched, err := e.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, 5, fetched.TimeSpent)

	entries, err := e.timeLogs.ListByIssue(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, 3, entries[0].HoursSpent)
	require.Equal(t, user.ID, entries[0].UserID)
}

func TestTimeLog_RejectsNonPositiveHours(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	user := e.seedUser(t, "ada@example.com")
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Timed")

	for _, hours := range []int{0, -1} {
		_, err := e.timeLogs.Log(ctx, user.ID, issue.ID, hours, "")
		require.True(t, domain.IsInvalidArgument(err))
	}
}

func TestTimeLog_RequiresKnownActor(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Timed")

	_, err := e.timeLogs.Log(ctx, "ghost", issue.ID, 1, "")
	require.True(t, domain.IsNotFound(err))
}

func TestTimeLog_DirectPatchOverwritesTotal(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	user := e.seedUser(t, "ada@example.com")
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Timed")
	_, err := e.timeLogs.Log(ctx, user.ID, issue.ID, 4, "")
	require.NoError(t, err)

	// A patch sets the absolute total; it does not add.
	updated, err := e.issues.Update(ctx, testActor, issue.ID, domain.IssuePatch{
		TimeSpent: domain.Some(1),
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated.TimeSpent)
}
