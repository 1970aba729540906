package sqlite

import (
	"time"

	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// Row models map SQL columns to Go values: nullable columns are pointers,
// time values are Unix timestamps.

type organizationRow struct {
	ID        string
	Name      string
	CreatedAt int64
	UpdatedAt int64
}

func (r *organizationRow) toDomain() *domain.Organization {
	return &domain.Organization{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type userRow struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	TeamID    *string
	CreatedAt int64
	UpdatedAt int64
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		TeamID:    fromNullable(r.TeamID),
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type projectRow struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	StartDate      int64
	EndDate        int64
	Status         string
	CreatedAt      int64
	UpdatedAt      int64
}

func (r *projectRow) toDomain() *domain.Project {
	return &domain.Project{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Description:    r.Description,
		StartDate:      time.Unix(r.StartDate, 0).UTC(),
		EndDate:        time.Unix(r.EndDate, 0).UTC(),
		Status:         domain.ProjectStatus(r.Status),
		CreatedAt:      time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt:      time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type boardRow struct {
	ID        string
	ProjectID string
	Name      string
	Type      string
	CreatedAt int64
	UpdatedAt int64
}

func (r *boardRow) toDomain() *domain.Board {
	return &domain.Board{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Name:      r.Name,
		Type:      domain.BoardType(r.Type),
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type sprintRow struct {
	ID        string
	BoardID   string
	Name      string
	Goal      string
	StartDate int64
	EndDate   int64
	Status    string
	CreatedAt int64
	UpdatedAt int64
}

func (r *sprintRow) toDomain() *domain.Sprint {
	return &domain.Sprint{
		ID:        r.ID,
		BoardID:   r.BoardID,
		Name:      r.Name,
		Goal:      r.Goal,
		StartDate: time.Unix(r.StartDate, 0).UTC(),
		EndDate:   time.Unix(r.EndDate, 0).UTC(),
		Status:    domain.SprintStatus(r.Status),
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type issueRow struct {
	ID            string
	ProjectID     string
	BoardID       string
	SprintID      *string
	AssigneeID    *string
	Title         string
	Description   string
	Type          string
	Status        string
	EstimateHours int
	TimeSpent     int
	OrderInColumn int
	Version       int64
	CreatedAt     int64
	UpdatedAt     int64
}

func (r *issueRow) toDomain() *domain.Issue {
	return &domain.Issue{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		BoardID:       r.BoardID,
		SprintID:      fromNullable(r.SprintID),
		AssigneeID:    fromNullable(r.AssigneeID),
		Title:         r.Title,
		Description:   r.Description,
		Type:          domain.IssueType(r.Type),
		Status:        domain.IssueStatus(r.Status),
		EstimateHours: r.EstimateHours,
		TimeSpent:     r.TimeSpent,
		OrderInColumn: r.OrderInColumn,
		Version:       r.Version,
		CreatedAt:     time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt:     time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

type timeLogRow struct {
	ID         string
	IssueID    string
	UserID     string
	HoursSpent int
	Notes      string
	CreatedAt  int64
}

func (r *timeLogRow) toDomain() *domain.TimeLog {
	return &domain.TimeLog{
		ID:         r.ID,
		IssueID:    r.IssueID,
		UserID:     r.UserID,
		HoursSpent: r.HoursSpent,
		Notes:      r.Notes,
		CreatedAt:  time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type noteRow struct {
	ID        string
	IssueID   string
	AuthorID  string
	Body      string
	CreatedAt int64
}

func (r *noteRow) toDomain() *domain.Note {
	return &domain.Note{
		ID:        r.ID,
		IssueID:   r.IssueID,
		AuthorID:  r.AuthorID,
		Body:      r.Body,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type auditRow struct {
	ID          string
	ActorID     string
	Action      string
	EntityType  string
	EntityID    string
	BeforeState string
	AfterState  string
	Description string
	Timestamp   int64
}

func (r *auditRow) toDomain() *domain.AuditLog {
	return &domain.AuditLog{
		ID:          r.ID,
		ActorID:     r.ActorID,
		Action:      r.Action,
		EntityType:  r.EntityType,
		EntityID:    r.EntityID,
		BeforeState: r.BeforeState,
		AfterState:  r.AfterState,
		Description: r.Description,
		Timestamp:   time.Unix(r.Timestamp, 0).UTC(),
	}
}

// toNullable converts an empty string to NULL.
func toNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fromNullable converts NULL to an empty string.
func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
