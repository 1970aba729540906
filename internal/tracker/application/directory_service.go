package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// DirectoryService manages the referents the tracker points at:
// organizations and users. Authentication and role policy live outside the
// core; this service only keeps the records the weak references resolve to.
type DirectoryService struct {
	store    Store
	recorder *AuditRecorder
}

// NewDirectoryService wires a directory service.
func NewDirectoryService(store Store, recorder *AuditRecorder) *DirectoryService {
	return &DirectoryService{store: store, recorder: recorder}
}

// CreateOrganization persists a new organization.
func (s *DirectoryService) CreateOrganization(ctx context.Context, actorID, name string) (*domain.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.InvalidArgumentError{Field: "name", Reason: "must not be empty"}
	}
	var org *domain.Organization
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		now := time.Now().UTC()
		org = &domain.Organization{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Organizations().Create(ctx, org); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntityOrganization, org.ID, nil, org, "")
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// GetOrganization returns one organization by id.
func (s *DirectoryService) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	return s.store.Organizations().Get(ctx, id)
}

// ListOrganizations returns all organizations.
func (s *DirectoryService) ListOrganizations(ctx context.Context) ([]*domain.Organization, error) {
	return s.store.Organizations().List(ctx)
}

// CreateUserInput carries the fields accepted when creating a user.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	TeamID    string
}

// CreateUser persists a new user.
func (s *DirectoryService) CreateUser(ctx context.Context, actorID string, in CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, &domain.InvalidArgumentError{Field: "email", Reason: "must not be empty"}
	}
	var user *domain.User
	err := s.store.RunInTransaction(ctx, func(tx Tx) error {
		now := time.Now().UTC()
		user = &domain.User{
			ID:        uuid.NewString(),
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			TeamID:    in.TeamID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, actorID, ActionCreate, EntityUser, user.ID, nil, user, "")
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns one user by id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.store.Users().Get(ctx, id)
}

// ListUsers returns all users.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.Users().List(ctx)
}
