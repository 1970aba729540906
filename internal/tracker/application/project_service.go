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

// DateLayout is the wire format for project and sprint date ranges.
const DateLayout = "2006-01-02"

// parseDate parses a wire-format date, failing closed on bad input.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &domain.InvalidArgumentError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return t, nil
}

// CreateProjectInput carries the fields accepted when creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Status      string
}

// ProjectService manages projects under an organization.
type ProjectService struct {
	store    Store
	recorder *AuditRecorder
	tracer   trace.Tracer
}

// NewProjectService wires a project service.
func NewProjectService(store Store, recorder *AuditRecorder) *ProjectService {
	return &ProjectService{store: store, recorder: recorder, tracer: otel.Tracer(tracerName)}
}

// Create persists a new project owned by the given organization.
func (s *ProjectService) Create(ctx context.Context, actorID, orgID string, in CreateProjectInput) (*domain.Project, error) {
	ctx, span := s.tracer.Start(ctx, "project.Create", trace.WithAttributes(attribute.String("organization.id", orgID)))
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
	status := domain.ProjectActive
	if in.Status != "" {
		if status, err = domain.ParseProjectStatus(in.Status); err != nil {
			return nil, err
		}
	}

	var project *domain.Project
	err = s.store.RunInTransaction(ctx, func(tx Tx) error {
		if _, err := tx.Organizations().Get(ctx, orgID); err != nil {
			return err
		}
		now := time.Now().UTC()
		project = &domain.Project{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			Name:           in.Name,
			Description:    in.Description,
			StartDate:      start,
			EndDate:        end,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Projects().Create(ctx, project); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntityProject, project.ID, nil, project, "")
	})
	if err != nil {
		return nil, err
	}
	log.Info(log.CatService, "Project created", "id", project.ID, "organization", orgID)
	return project, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.Projects().Get(ctx, id)
}

// ListByOrganization returns an organization's projects.
func (s *ProjectService) ListByOrganization(ctx context.Context, orgID string) ([]*domain.Project, error) {
	if _, err := s.store.Organizations().Get(ctx, orgID); err != nil {
		return nil, err
	}
	return s.store.Projects().ListByOrganization(ctx, orgID)
}

// Update applies a partial patch to a project. The merged date range is
// validated before anything is written.
func (s *ProjectService) Update(ctx context.Context, actorID, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	ctx, span := s.tracer.Start(ctx, "project.Update", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	var project *domain.Project
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		var err error
		project, err = tx.Projects().Get(ctx, id)
		if err != nil {
			return err
		}
		before := *project
		next := *project

		if name, ok := patch.Name.Get(); ok {
			if strings.TrimSpace(name) == "" {
				return &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
			}
			next.Name = name
		}
		if desc, ok := patch.Description.Get(); ok {
			next.Description = desc
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
			if next.Status, err = domain.ParseProjectStatus(token); err != nil {
				return err
			}
		}
		next.UpdatedAt = time.Now().UTC()
		*project = next
		if err := tx.Projects().Update(ctx, project); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionUpdate, EntityProject, project.ID, &before, project, "")
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project. Its boards and issues, and transitively their
// sprints, time logs, and notes, cascade with it.
func (s *ProjectService) Delete(ctx context.Context, actorID, id string) error {
	ctx, span := s.tracer.Start(ctx, "project.Delete", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		project, err := tx.Projects().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Projects().Delete(ctx, id); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionDelete, EntityProject, id, project, nil, "")
	})
	if err != nil {
		return err
	}
	log.Info(log.CatService, "Project deleted", "id", id)
	return nil
}
