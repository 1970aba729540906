package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

func TestProjectCreate_DefaultsToActive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	org, err := e.directory.CreateOrganization(ctx, testActor, "Acme")
	require.NoError(t, err)

	project, err := e.projects.Create(ctx, testActor, org.ID, application.CreateProjectInput{
		Name:      "Apollo",
		StartDate: "2026-01-01",
		EndDate:   "2026-06-30",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ProjectActive, project.Status)
	require.Equal(t, org.ID, project.OrganizationID)
}

func TestProjectCreate_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	org, err := e.directory.CreateOrganization(ctx, testActor, "Acme")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input application.CreateProjectInput
	}{
		{"empty name", application.CreateProjectInput{StartDate: "2026-01-01", EndDate: "2026-06-30"}},
		{"bad date", application.CreateProjectInput{Name: "x", StartDate: "January 1st", EndDate: "2026-06-30"}},
		{"inverted range", application.CreateProjectInput{Name: "x", StartDate: "2026-06-30", EndDate: "2026-01-01"}},
		{"unknown status", application.CreateProjectInput{Name: "x", StartDate: "2026-01-01", EndDate: "2026-06-30", Status: "PAUSED"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.projects.Create(ctx, testActor, org.ID, tt.input)
			require.True(t, domain.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestProjectCreate_UnknownOrganization(t *testing.T) {
	e := newEnv(t)

	_, err := e.projects.Create(context.Background(), testActor, "missing", application.CreateProjectInput{
		Name:      "Apollo",
		StartDate: "2026-01-01",
		EndDate:   "2026-06-30",
	})
	require.True(t, domain.IsNotFound(err))
}

func TestProjectUpdate_DateRangeCheckedAgainstMergedState(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	// Moving the start past the stored end must fail even though the
	// patch itself only carries one date.
	_, err := e.projects.Update(ctx, testActor, board.ProjectID, domain.ProjectPatch{
		StartDate: domain.Some("2027-06-30"),
	})
	require.True(t, domain.IsInvalidArgument(err))

	updated, err := e.projects.Update(ctx, testActor, board.ProjectID, domain.ProjectPatch{
		EndDate: domain.Some("2027-12-31"),
	})
	require.NoError(t, err)
	require.Equal(t, 2027, updated.EndDate.Year())
}

func TestProjectDelete_CascadesToBoardsAndIssues(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Orphan-to-be")
	sprint, err := e.sprints.Create(ctx, testActor, board.ID, application.CreateSprintInput{
		Name:      "Sprint 1",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-14",
	})
	require.NoError(t, err)

	require.NoError(t, e.projects.Delete(ctx, testActor, board.ProjectID))

	_, err = e.projects.Get(ctx, board.ProjectID)
	require.True(t, domain.IsNotFound(err))
	_, err = e.boards.Get(ctx, board.ID)
	require.True(t, domain.IsNotFound(err))
	_, err = e.sprints.Get(ctx, sprint.ID)
	require.True(t, domain.IsNotFound(err))
	_, err = e.issues.Get(ctx, issue.ID)
	require.True(t, domain.IsNotFound(err))
}

func TestBoardDelete_CascadesButKeepsProject(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)
	ctx := context.Background()

	issue := e.seedIssue(t, board.ID, "Boarded")
	require.NoError(t, e.boards.Delete(ctx, testActor, board.ID))

	_, err := e.issues.Get(ctx, issue.ID)
	require.True(t, domain.IsNotFound(err))
	_, err = e.projects.Get(ctx, board.ProjectID)
	require.NoError(t, err)
}

func TestSprintDelete_DetachesIssues(t *testing.T) {
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

	require.NoError(t, e.sprints.Delete(ctx, testActor, sprint.ID))

	// The sprint reference clears; the issue survives.
	fetched, err := e.issues.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.SprintID)
}

func TestSprintCreate_StartsInPlanning(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)

	sprint, err := e.sprints.Create(context.Background(), testActor, board.ID, application.CreateSprintInput{
		Name:      "Sprint 1",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-14",
	})
	require.NoError(t, err)
	require.Equal(t, domain.SprintPlanning, sprint.Status)
}

func TestBoardCreate_RejectsUnknownType(t *testing.T) {
	e := newEnv(t)
	board := e.seedBoard(t)

	_, err := e.boards.Create(context.Background(), testActor, board.ProjectID, application.CreateBoardInput{
		Name: "Misfit",
		Type: "WATERFALL",
	})
	require.True(t, domain.IsInvalidArgument(err))
}
