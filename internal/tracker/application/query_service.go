package application

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// IssueView is an issue denormalized for presentation: the assignee's
// display name is resolved so clients don't chase the weak reference.
type IssueView struct {
	domain.Issue
	AssigneeName string `json:"assignee_name,omitempty"`
}

// BoardSummary is a board plus per-status issue counts.
type BoardSummary struct {
	Board       *domain.Board             `json:"board"`
	IssueCounts map[domain.IssueStatus]int `json:"issue_counts"`
}

// ProjectOverview is a project with summaries of its boards.
type ProjectOverview struct {
	Project *domain.Project `json:"project"`
	Boards  []BoardSummary  `json:"boards"`
}

// QueryService assembles denormalized read views. Reads bypass the
// lifecycle engine and go straight to the store; there is no cache, so
// staleness is bounded by the store's own consistency.
type QueryService struct {
	store  Store
	tracer trace.Tracer
}

// NewQueryService wires a query service.
func NewQueryService(store Store) *QueryService {
	return &QueryService{store: store, tracer: otel.Tracer(tracerName)}
}

// BoardIssues returns the board's issues in column order, each joined with
// its assignee's display name.
func (s *QueryService) BoardIssues(ctx context.Context, boardID string) ([]IssueView, error) {
	ctx, span := s.tracer.Start(ctx, "query.BoardIssues", trace.WithAttributes(attribute.String("board.id", boardID)))
	defer span.End()

	if _, err := s.store.Boards().Get(ctx, boardID); err != nil {
		return nil, err
	}
	issues, err := s.store.Issues().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]IssueView, 0, len(issues))
	for _, issue := range issues {
		view := IssueView{Issue: *issue}
		if issue.AssigneeID != "" {
			name, ok := names[issue.AssigneeID]
			if !ok {
				user, err := s.store.Users().Get(ctx, issue.AssigneeID)
				if err == nil {
					name = user.DisplayName()
				}
				// A dangling assignee renders as an empty name rather than
				// failing the whole view.
				names[issue.AssigneeID] = name
			}
			view.AssigneeName = name
		}
		views = append(views, view)
	}
	return views, nil
}

// Overview returns a project with per-board issue counts grouped by status.
func (s *QueryService) Overview(ctx context.Context, projectID string) (*ProjectOverview, error) {
	ctx, span := s.tracer.Start(ctx, "query.Overview", trace.WithAttributes(attribute.String("project.id", projectID)))
	defer span.End()

	project, err := s.store.Projects().Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	boards, err := s.store.Boards().ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	overview := &ProjectOverview{Project: project, Boards: make([]BoardSummary, 0, len(boards))}
	for _, board := range boards {
		issues, err := s.store.Issues().ListByBoard(ctx, board.ID)
		if err != nil {
			return nil, err
		}
		counts := make(map[domain.IssueStatus]int)
		for _, issue := range issues {
			counts[issue.Status]++
		}
		overview.Boards = append(overview.Boards, BoardSummary{Board: board, IssueCounts: counts})
	}
	return overview, nil
}
