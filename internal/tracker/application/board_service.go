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

// CreateBoardInput carries the fields accepted when creating a board.
type CreateBoardInput struct {
	Name string
	Type string
}

// BoardService manages boards under a project.
type BoardService struct {
	store    Store
	recorder *AuditRecorder
	tracer   trace.Tracer
}

// NewBoardService wires a board service.
func NewBoardService(store Store, recorder *AuditRecorder) *BoardService {
	return &BoardService{store: store, recorder: recorder, tracer: otel.Tracer(tracerName)}
}

// Create persists a new board under the given project.
func (s *BoardService) Create(ctx context.Context, actorID, projectID string, in CreateBoardInput) (*domain.Board, error) {
	ctx, span := s.tracer.Start(ctx, "board.Create", trace.WithAttributes(attribute.String("project.id", projectID)))
	defer span.End()

	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
	}
	boardType, err := domain.ParseBoardType(in.Type)
	if err != nil {
		return nil, err
	}

	var board *domain.Board
	err = s.store.RunInTransaction(ctx, func(tx Tx) error {
		if _, err := tx.Projects().Get(ctx, projectID); err != nil {
			return err
		}
		now := time.Now().UTC()
		board = &domain.Board{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Name:      in.Name,
			Type:      boardType,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Boards().Create(ctx, board); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntityBoard, board.ID, nil, board, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Board created", "id", board.ID, "project", projectID)
	return board, nil
}

// Get returns one board by id.
func (s *BoardService) Get(ctx context.Context, id string) (*domain.Board, error) {
	return s.store.Boards().Get(ctx, id)
}

// ListByProject returns a project's boards.
func (s *BoardService) ListByProject(ctx context.Context, projectID string) ([]*domain.Board, error) {
	if _, err := s.store.Projects().Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.Boards().ListByProject(ctx, projectID)
}

// Update applies a partial patch to a board.
func (s *BoardService) Update(ctx context.Context, actorID, id string, patch domain.BoardPatch) (*domain.Board, error) {
	ctx, span := s.tracer.Start(ctx, "board.Update", trace.WithAttributes(attribute.String("board.id", id)))
	defer span.End()

	var board *domain.Board
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		var err error
		board, err = tx.Boards().Get(ctx, id)
		if err != nil {
			return err
		}
		before := *board

		if name, ok := patch.Name.Get(); ok {
			if strings.TrimSpace(name) == "" {
				return &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
			}
			board.Name = name
		}
		if token, ok := patch.Type.Get(); ok {
			if board.Type, err = domain.ParseBoardType(token); err != nil {
				return err
			}
		}
		board.UpdatedAt = time.Now().UTC()
		if err := tx.Boards().Update(ctx, board); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionUpdate, EntityBoard, board.ID, &before, board, "")
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Delete removes a board. Its sprints and issues cascade with it.
func (s *BoardService) Delete(ctx context.Context, actorID, id string) error {
	ctx, span := s.tracer.Start(ctx, "board.Delete", trace.WithAttributes(attribute.String("board.id", id)))
	defer span.End()

	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		board, err := tx.Boards().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Boards().Delete(ctx, id); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionDelete, EntityBoard, id, board, nil, "")
	})
	if err != nil {
		return err
	}
	log.Info(log.CatService, "Board deleted", "id", id)
	return nil
}
