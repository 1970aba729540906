package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// TimeLogService records hours spent on issues. Logged hours are additive:
// each entry adds to the issue's running total in the same transaction.
// Absolute corrections of the total go through an issue patch instead.
type TimeLogService struct {
	store    Store
	recorder *AuditRecorder
	tracer   trace.Tracer
}

// NewTimeLogService wires a time-log service.
func NewTimeLogService(store Store, recorder *AuditRecorder) *TimeLogService {
	return &TimeLogService{store: store, recorder: recorder, tracer: otel.Tracer(tracerName)}
}

// Log appends a time log for the acting user and adds the hours to the
// issue's total.
func (s *TimeLogService) Log(ctx context.Context, actorID, issueID string, hours int, notes string) (*domain.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.Log", trace.WithAttributes(attribute.String("issue.id", issueID)))
	defer span.End()

	if hours <= 0 {
		return nil, &domain.InvalidArgumentError{Field: "hours_spent", Reason: "must be positive"}
	}

	var entry *domain.TimeLog
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		issue, err := tx.Issues().Get(ctx, issueID)
		if err != nil {
			return err
		}
		if _, err := tx.Users().Get(ctx, actorID); err != nil {
			return err
		}
		before := *issue

		entry = &domain.TimeLog{
			ID:         uuid.NewString(),
			IssueID:    issue.ID,
			UserID:     actorID,
			HoursSpent: hours,
			Notes:      notes,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.TimeLogs().Create(ctx, entry); err != nil {
			return err
		}
		issue.TimeSpent += hours
		issue.UpdatedAt = entry.CreatedAt
		if err := tx.Issues().Update(ctx, issue); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionTimeLogged, EntityIssue, issue.ID, &before, issue, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Time logged", "issue", issueID, "hours", hours)
	return entry, nil
}

// ListByIssue returns an issue's time logs in creation order.
func (s *TimeLogService) ListByIssue(ctx context.Context, issueID string) ([]*domain.TimeLog, error) {
	if _, err := s.store.Issues().Get(ctx, issueID); err != nil {
		return nil, err
	}
	return s.store.TimeLogs().ListByIssue(ctx, issueID)
}
