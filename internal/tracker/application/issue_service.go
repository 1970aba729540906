package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// Entity type labels used in audit rows.
const (
	EntityOrganization = "organization"
	EntityUser         = "user"
	EntityProject      = "project"
	EntityBoard        = "board"
	EntitySprint       = "sprint"
	EntityIssue        = "issue"
)

const tracerName = "github.com/alphawork/alphawork/internal/tracker/application"

// CreateIssueInput carries the fields accepted when creating an issue.
// Title and Type are required. Status defaults to TODO. OrderInColumn, when
// nil, is assigned the next slot at the tail of the (board, status) column.
type CreateIssueInput struct {
	Title         string
	Description   string
	Type          string
	Status        string
	SprintID      string
	AssigneeID    string
	EstimateHours int
	OrderInColumn *int
}

// IssueService is the issue lifecycle engine. It owns status transitions,
// column-order assignment, and the cross-entity consistency rules; every
// mutation commits atomically with its audit row.
type IssueService struct {
	store    Store
	recorder *AuditRecorder
	tracer   trace.Tracer
}

// NewIssueService wires the lifecycle engine to a store and audit recorder.
func NewIssueService(store Store, recorder *AuditRecorder) *IssueService {
	return &IssueService{
		store:    store,
		recorder: recorder,
		tracer:   otel.Tracer(tracerName),
	}
}

// Create validates the input, resolves the board and its project, assigns
// the initial column position, and persists the issue plus one audit row.
func (s *IssueService) Create(ctx context.Context, actorID, boardID string, in CreateIssueInput) (*domain.Issue, error) {
	ctx, span := s.tracer.Start(ctx, "issue.Create", trace.WithAttributes(attribute.String("board.id", boardID)))
	defer span.End()

	if strings.TrimSpace(in.Title) == "" {
		return nil, &domain.InvalidArgumentError{Field: "title", Reason: "must not be empty"}
	}
	issueType, err := domain.ParseIssueType(in.Type)
	if err != nil {
		return nil, err
	}
	status := domain.StatusTodo
	if in.Status != "" {
		if status, err = domain.ParseIssueStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if in.EstimateHours < 0 {
		return nil, &domain.InvalidArgumentError{Field: "estimate_hours", Reason: "must not be negative"}
	}

	var issue *domain.Issue
	err = s.store.RunInTransaction(ctx, func(tx Tx) error {
		board, err := tx.Boards().Get(ctx, boardID)
		if err != nil {
			return err
		}
		if in.SprintID != "" {
			sprint, err := tx.Sprints().Get(ctx, in.SprintID)
			if err != nil {
				return err
			}
			if sprint.BoardID != board.ID {
				return &domain.InvalidArgumentError{Field: "sprint_id", Reason: "sprint belongs to a different board"}
			}
		}
		if in.AssigneeID != "" {
			if _, err := tx.Users().Get(ctx, in.AssigneeID); err != nil {
				return err
			}
		}

		order := 0
		if in.OrderInColumn != nil {
			order = *in.OrderInColumn
		} else {
			count, err := tx.Issues().CountInColumn(ctx, board.ID, status)
			if err != nil {
				return err
			}
			order = count
		}

		now := time.Now().UTC()
		issue = &domain.Issue{
			ID:            uuid.NewString(),
			ProjectID:     board.ProjectID,
			BoardID:       board.ID,
			SprintID:      in.SprintID,
			AssigneeID:    in.AssigneeID,
			Title:         in.Title,
			Description:   in.Description,
			Type:          issueType,
			Status:        status,
			EstimateHours: in.EstimateHours,
			OrderInColumn: order,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Issues().Create(ctx, issue); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntityIssue, issue.ID, nil, issue, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Issue created", "id", issue.ID, "board", boardID, "status", string(issue.Status))
	return issue, nil
}

// UpdateStatus transitions an issue to the given status. Transitions are
// unrestricted. When the status actually changes the issue is reassigned
// to the tail of its destination column so column positions stay coherent
// after cross-column moves.
func (s *IssueService) UpdateStatus(ctx context.Context, actorID, issueID, statusToken string) (*domain.Issue, error) {
	ctx, span := s.tracer.Start(ctx, "issue.UpdateStatus", trace.WithAttributes(attribute.String("issue.id", issueID)))
	defer span.End()

	status, err := domain.ParseIssueStatus(statusToken)
	if err != nil {
		return nil, err
	}

	var issue *domain.Issue
	err = s.store.RunInTransaction(ctx, func(tx Tx) error {
		var err error
		issue, err = tx.Issues().Get(ctx, issueID)
		if err != nil {
			return err
		}
		before := *issue

		if issue.Status != status {
			tail, err := tx.Issues().CountInColumn(ctx, issue.BoardID, status)
			if err != nil {
				return err
			}
			issue.Status = status
			issue.OrderInColumn = tail
		}
		issue.UpdatedAt = time.Now().UTC()
		if err := tx.Issues().Update(ctx, issue); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionStatusChange, EntityIssue, issue.ID, &before, issue, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Issue status updated", "id", issueID, "status", string(status))
	return issue, nil
}

// Update applies a partial patch. The whole patch is validated against the
// stored issue before any field is applied; absent fields stay untouched.
func (s *IssueService) Update(ctx context.Context, actorID, issueID string, patch domain.IssuePatch) (*domain.Issue, error) {
	ctx, span := s.tracer.Start(ctx, "issue.Update", trace.WithAttributes(attribute.String("issue.id", issueID)))
	defer span.End()

	var issue *domain.Issue
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		var err error
		issue, err = tx.Issues().Get(ctx, issueID)
		if err != nil {
			return err
		}
		before := *issue

		next, err := s.validatePatch(ctx, tx, issue, patch)
		if err != nil {
			return err
		}

		// Cross-column move without an explicit position lands at the
		// destination tail.
		if next.Status != before.Status && !patch.OrderInColumn.IsSet() {
			tail, err := tx.Issues().CountInColumn(ctx, issue.BoardID, next.Status)
			if err != nil {
				return err
			}
			next.OrderInColumn = tail
		}
		next.UpdatedAt = time.Now().UTC()
		*issue = next
		if err := tx.Issues().Update(ctx, issue); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionUpdate, EntityIssue, issue.ID, &before, issue, "")
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// validatePatch checks every supplied field against the stored issue and
// returns the fully merged result. No store write happens here, so a
// failing field rejects the whole patch.
func (s *IssueService) validatePatch(ctx context.Context, tx Tx, issue *domain.Issue, patch domain.IssuePatch) (domain.Issue, error) {
	next := *issue

	if v, ok := patch.ExpectedVersion.Get(); ok && v != issue.Version {
		return next, &domain.ConflictError{Kind: EntityIssue, ID: issue.ID}
	}
	if title, ok := patch.Title.Get(); ok {
		if strings.TrimSpace(title) == "" {
			return next, &domain.InvalidArgumentError{Field: "title", Reason: "must not be empty"}
		}
		next.Title = title
	}
	if desc, ok := patch.Description.Get(); ok {
		next.Description = desc
	}
	if token, ok := patch.Type.Get(); ok {
		t, err := domain.ParseIssueType(token)
		if err != nil {
			return next, err
		}
		next.Type = t
	}
	if token, ok := patch.Status.Get(); ok {
		st, err := domain.ParseIssueStatus(token)
		if err != nil {
			return next, err
		}
		next.Status = st
	}
	if sprintID, ok := patch.SprintID.Get(); ok {
		if sprintID != "" {
			sprint, err := tx.Sprints().Get(ctx, sprintID)
			if err != nil {
				return next, err
			}
			if sprint.BoardID != issue.BoardID {
				return next, &domain.InvalidArgumentError{Field: "sprint_id", Reason: "sprint belongs to a different board"}
			}
		}
		next.SprintID = sprintID
	}
	if assigneeID, ok := patch.AssigneeID.Get(); ok {
		if assigneeID != "" {
			if _, err := tx.Users().Get(ctx, assigneeID); err != nil {
				return next, err
			}
		}
		next.AssigneeID = assigneeID
	}
	if est, ok := patch.EstimateHours.Get(); ok {
		if est < 0 {
			return next, &domain.InvalidArgumentError{Field: "estimate_hours", Reason: "must not be negative"}
		}
		next.EstimateHours = est
	}
	if spent, ok := patch.TimeSpent.Get(); ok {
		if spent < 0 {
			return next, &domain.InvalidArgumentError{Field: "time_spent_hours", Reason: "must not be negative"}
		}
		next.TimeSpent = spent
	}
	if order, ok := patch.OrderInColumn.Get(); ok {
		next.OrderInColumn = order
	}
	return next, nil
}

// Get returns one issue by id.
func (s *IssueService) Get(ctx context.Context, issueID string) (*domain.Issue, error) {
	return s.store.Issues().Get(ctx, issueID)
}

// ListByBoard returns the board's issues in ascending OrderInColumn with a
// deterministic tie-break, suitable for rendering columns.
func (s *IssueService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error) {
	ctx, span := s.tracer.Start(ctx, "issue.ListByBoard", trace.WithAttributes(attribute.String("board.id", boardID)))
	defer span.End()

	if _, err := s.store.Boards().Get(ctx, boardID); err != nil {
		return nil, err
	}
	return s.store.Issues().ListByBoard(ctx, boardID)
}

// ListBySprint returns all issues referencing the sprint in natural fetch
// order.
func (s *IssueService) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Issue, error) {
	if _, err := s.store.Sprints().Get(ctx, sprintID); err != nil {
		return nil, err
	}
	return s.store.Issues().ListBySprint(ctx, sprintID)
}

// Delete removes an issue. Owned time logs and notes cascade with it.
func (s *IssueService) Delete(ctx context.Context, actorID, issueID string) error {
	ctx, span := s.tracer.Start(ctx, "issue.Delete", trace.WithAttributes(attribute.String("issue.id", issueID)))
	defer span.End()

	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		issue, err := tx.Issues().Get(ctx, issueID)
		if err != nil {
			return err
		}
		if err := tx.Issues().Delete(ctx, issueID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionDelete, EntityIssue, issueID, issue, nil, "")
	})
	if err != nil {
		return err
	}
	log.Info(log.CatService, "Issue deleted", "id", issueID)
	return nil
}

// AddNote attaches a free-form note to an issue.
func (s *IssueService) AddNote(ctx context.Context, actorID, issueID, body string) (*domain.Note, error) {
	if strings.TrimSpace(body) == "" {
		return nil, &domain.InvalidArgumentError{Field: "body", Reason: "must not be empty"}
	}
	var note *domain.Note
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		issue, err := tx.Issues().Get(ctx, issueID)
		if err != nil {
			return err
		}
		note = &domain.Note{
			ID:        uuid.NewString(),
			IssueID:   issue.ID,
			AuthorID:  actorID,
			Body:      body,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Notes().Create(ctx, note); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionNoteAdded, EntityIssue, issue.ID, nil, note, "")
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns an issue's notes in creation order.
func (s *IssueService) ListNotes(ctx context.Context, issueID string) ([]*domain.Note, error) {
	if _, err := s.store.Issues().Get(ctx, issueID); err != nil {
		return nil, err
	}
	return s.store.Notes().ListByIssue(ctx, issueID)
}
