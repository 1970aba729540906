package domain

import "time"

// Organization is the root of the ownership hierarchy.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team groups users within an organization.
type Team struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// User is an account that can act on entities and be assigned to issues.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	TeamID    string    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the user's full name for presentation.
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Project owns boards and issues. StartDate must not be after EndDate.
type Project struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	Status         ProjectStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Board belongs to exactly one project and owns sprints and issues.
type Board struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Type      BoardType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sprint belongs to exactly one board. Its issue set is non-owning: issues
// reference the sprint, not vice versa.
type Sprint struct {
	ID        string       `json:"id"`
	BoardID   string       `json:"board_id"`
	Name      string       `json:"name"`
	Goal      string       `json:"goal,omitempty"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Status    SprintStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Issue belongs to exactly one project and one board, optionally one sprint
// and one assignee. OrderInColumn defines its position within the
// (board, status) column; gaps are permitted.
type Issue struct {
	ID            string      `json:"id"`
	ProjectID     string      `json:"project_id"`
	BoardID       string      `json:"board_id"`
	SprintID      string      `json:"sprint_id,omitempty"`
	AssigneeID    string      `json:"assignee_id,omitempty"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Type          IssueType   `json:"type"`
	Status        IssueStatus `json:"status"`
	EstimateHours int         `json:"estimate_hours"`
	TimeSpent     int         `json:"time_spent_hours"`
	OrderInColumn int         `json:"order_in_column"`
	Version       int64       `json:"version"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TimeLog records hours a user spent on an issue. HoursSpent is always
// positive; corrections to an issue's total go through an issue patch.
type TimeLog struct {
	ID         string    `json:"id"`
	IssueID    string    `json:"issue_id"`
	UserID     string    `json:"user_id"`
	HoursSpent int       `json:"hours_spent"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Note is free-form text attached to an issue.
type Note struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issue_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLog is an immutable record of one mutation: acting user, action
// label, the entity touched, and serialized before/after snapshots. Rows
// are append-only and never updated or deleted.
type AuditLog struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	BeforeState string    `json:"before_state,omitempty"`
	AfterState  string    `json:"after_state,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
