package domain

import "fmt"

// ProjectStatus represents the project lifecycle state.
type ProjectStatus string

const (
	ProjectPlanning ProjectStatus = "PLANNING"
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectClosed   ProjectStatus = "CLOSED"
	ProjectArchived ProjectStatus = "ARCHIVED"
)

// BoardType categorizes how a board is run.
type BoardType string

const (
	BoardScrum  BoardType = "SCRUM"
	BoardKanban BoardType = "KANBAN"
)

// SprintStatus represents the sprint lifecycle state.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "PLANNING"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
	SprintCancelled SprintStatus = "CANCELLED"
)

// IssueStatus is the column an issue sits in. Any status may transition to
// any other status; the board models a flexible kanban flow, not a strict
// workflow graph.
type IssueStatus string

const (
	StatusTodo    IssueStatus = "TODO"
	StatusDoing   IssueStatus = "DOING"
	StatusDone    IssueStatus = "DONE"
	StatusBlocked IssueStatus = "BLOCKED"
	StatusReview  IssueStatus = "REVIEW"
	StatusQA      IssueStatus = "QA"
)

// IssueType categorizes the nature of work.
type IssueType string

const (
	TypeTask  IssueType = "TASK"
	TypeStory IssueType = "STORY"
	TypeBug   IssueType = "BUG"
)

var projectStatuses = map[string]ProjectStatus{
	string(ProjectPlanning): ProjectPlanning,
	string(ProjectActive):   ProjectActive,
	string(ProjectClosed):   ProjectClosed,
	string(ProjectArchived): ProjectArchived,
}

var boardTypes = map[string]BoardType{
	string(BoardScrum):  BoardScrum,
	string(BoardKanban): BoardKanban,
}

var sprintStatuses = map[string]SprintStatus{
	string(SprintPlanning):  SprintPlanning,
	string(SprintActive):    SprintActive,
	string(SprintCompleted): SprintCompleted,
	string(SprintCancelled): SprintCancelled,
}

var issueStatuses = map[string]IssueStatus{
	string(StatusTodo):    StatusTodo,
	string(StatusDoing):   StatusDoing,
	string(StatusDone):    StatusDone,
	string(StatusBlocked): StatusBlocked,
	string(StatusReview):  StatusReview,
	string(StatusQA):      StatusQA,
}

var issueTypes = map[string]IssueType{
	string(TypeTask):  TypeTask,
	string(TypeStory): TypeStory,
	string(TypeBug):   TypeBug,
}

// ParseProjectStatus maps a textual token to a ProjectStatus.
// Unknown tokens fail closed with InvalidArgumentError.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	v, ok := projectStatuses[s]
	if !ok {
		return "", &InvalidArgumentError{Field: "status", Reason: fmt.Sprintf("unknown project status %q", s)}
	}
	return v, nil
}

// ParseBoardType maps a textual token to a BoardType.
func ParseBoardType(s string) (BoardType, error) {
	v, ok := boardTypes[s]
	if !ok {
		return "", &InvalidArgumentError{Field: "type", Reason: fmt.Sprintf("unknown board type %q", s)}
	}
	return v, nil
}

// ParseSprintStatus maps a textual token to a SprintStatus.
func ParseSprintStatus(s string) (SprintStatus, error) {
	v, ok := sprintStatuses[s]
	if !ok {
		return "", &InvalidArgumentError{Field: "status", Reason: fmt.Sprintf("unknown sprint status %q", s)}
	}
	return v, nil
}

// ParseIssueStatus maps a textual token to an IssueStatus.
func ParseIssueStatus(s string) (IssueStatus, error) {
	v, ok := issueStatuses[s]
	if !ok {
		return "", &InvalidArgumentError{Field: "status", Reason: fmt.Sprintf("unknown issue status %q", s)}
	}
	return v, nil
}

// ParseIssueType maps a textual token to an IssueType.
func ParseIssueType(s string) (IssueType, error) {
	v, ok := issueTypes[s]
	if !ok {
		return "", &InvalidArgumentError{Field: "type", Reason: fmt.Sprintf("unknown issue type %q", s)}
	}
	return v, nil
}
