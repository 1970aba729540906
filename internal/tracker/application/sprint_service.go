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

// CreateSprintInput carries the fields accepted when creating a sprint.
type CreateSprintInput struct {
	Name      string
	Goal      string
	StartDate string
	EndDate   string
}

// SprintService manages sprints under a board.
type SprintService struct {
	store    Store
	recorder *AuditRecorder
	tracer   trace.Tracer
}

// NewSprintService wires a sprint service.
func NewSprintService(store Store, recorder *AuditRecorder) *SprintService {
	return &SprintService{store: store, recorder: recorder, tracer: otel.Tracer(tracerName)}
}

// Create persists a new sprint under the given board, starting in PLANNING.
func (s *SprintService) Create(ctx context.Context, actorID, boardID string, in CreateSprintInput) (*domain.Sprint, error) {
	ctx, span := s.tracer.Start(ctx, "sprint.Create", trace.WithAttributes(attribute.String("board.id", boardID)))
	defer span.End()

	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, &domain.InvalidArgumentError{Field: "start_date", Reason: "must not be after end_date"}
	}

	var sprint *domain.Sprint
	err = s.store.RunInTransaction(ctx, func(tx Tx) error {
		if _, err := tx.Boards().Get(ctx, boardID); err != nil {
			return err
		}
		now := time.Now().UTC()
		sprint = &domain.Sprint{
			ID:        uuid.NewString(),
			BoardID:   boardID,
			Name:      in.Name,
			Goal:      in.Goal,
			StartDate: start,
			EndDate:   end,
			Status:    domain.SprintPlanning,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Sprints().Create(ctx, sprint); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntitySprint, sprint.ID, nil, sprint, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Sprint created", "id", sprint.ID, "board", boardID)
	return sprint, nil
}

// Get returns one sprint by id.
func (s *SprintService) Get(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.store.Sprints().Get(ctx, id)
}

// ListByBoard returns a board's sprints.
func (s *SprintService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error) {
	if _, err := s.store.Boards().Get(ctx, boardID); err != nil {
		return nil, err
	}
	return s.store.Sprints().ListByBoard(ctx, boardID)
}

// Update applies a partial patch to a sprint. The merged date range is
// validated before anything is written.
func (s *SprintService) Update(ctx context.Context, actorID, id string, patch domain.SprintPatch) (*domain.Sprint, error) {
	ctx, span := s.tracer.Start(ctx, "sprint.Update", trace.WithAttributes(attribute.String("sprint.id", id)))
	defer span.End()

	var sprint *domain.Sprint
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		var err error
		sprint, err = tx.Sprints().Get(ctx, id)
		if err != nil {
			return err
		}
		before := *sprint
		next := *sprint

		if name, ok := patch.Name.Get(); ok {
			if strings.TrimSpace(name) == "" {
				return &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
			}
			next.Name = name
		}
		if goal, ok := patch.Goal.Get(); ok {
			next.Goal = goal
		}
		if v, ok := patch.StartDate.Get(); ok {
			if next.StartDate, err = parseDate("start_date", v); err != nil {
				return err
			}
		}
		if v, ok := patch.EndDate.Get(); ok {
			if next.EndDate, err = parseDate("end_date", v); err != nil {
				return err
			}
		}
		if next.StartDate.After(next.EndDate) {
			return &domain.InvalidArgumentError{Field: "start_date", Reason: "must not be after end_date"}
		}
		if token, ok := patch.Status.Get(); ok {
			if next.Status, err = domain.ParseSprintStatus(token); err != nil {
				return err
			}
		}
		next.UpdatedAt = time.Now().UTC()
		*sprint = next
		if err := tx.Sprints().Update(ctx, sprint); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionUpdate, EntitySprint, sprint.ID, &before, sprint, "")
	})
	if err != nil {
		return nil, err
	}
	return sprint, nil
}

// Delete removes a sprint. Issues referencing it keep existing; their
// sprint reference is cleared by the store.
func (s *SprintService) Delete(ctx context.Context, actorID, id string) error {
	ctx, span := s.tracer.Start(ctx, "sprint.Delete", trace.WithAttributes(attribute.String("sprint.id", id)))
	defer span.End()

	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		sprint, err := tx.Sprints().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Sprints().Delete(ctx, id); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionDelete, EntitySprint, id, sprint, nil, "")
	})
	if err != nil {
		return err
	}
	log.Info(log.CatService, "Sprint deleted", "id", id)
	return nil
}
