package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alphawork/alphawork/internal/tracker/application"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// --- directory ---

type createOrganizationRequest struct {
	Name string `json:"name"`
}

func createOrganization(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createOrganizationRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		org, err := svc.CreateOrganization(c.Request().Context(), actorID(c), req.Name)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, org)
	}
}

func listOrganizations(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgs, err := svc.ListOrganizations(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, orgs)
	}
}

func getOrganization(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		org, err := svc.GetOrganization(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, org)
	}
}

type createUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TeamID    string `json:"team_id"`
}

func createUser(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createUserRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		user, err := svc.CreateUser(c.Request().Context(), actorID(c), application.CreateUserInput{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			TeamID:    req.TeamID,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, user)
	}
}

func listUsers(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := svc.ListUsers(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}

func getUser(svc *application.DirectoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := svc.GetUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// --- projects ---

type createProjectRequest struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
}

func createProject(svc *application.ProjectService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createProjectRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		project, err := svc.Create(c.Request().Context(), actorID(c), req.OrganizationID, application.CreateProjectInput{
			Name:        req.Name,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Status:      req.Status,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, project)
	}
}

func getProject(svc *application.ProjectService) echo.HandlerFunc {
	return func(c echo.Context) error {
		project, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, project)
	}
}

func listProjects(svc *application.ProjectService) echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := svc.ListByOrganization(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, projects)
	}
}

func updateProject(svc *application.ProjectService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.ProjectPatch
		if err := c.Bind(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		project, err := svc.Update(c.Request().Context(), actorID(c), c.Param("id"), patch)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, project)
	}
}

func deleteProject(svc *application.ProjectService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func projectOverview(svc *application.QueryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		overview, err := svc.Overview(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, overview)
	}
}

// --- boards ---

type createBoardRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

func createBoard(svc *application.BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createBoardRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		board, err := svc.Create(c.Request().Context(), actorID(c), req.ProjectID, application.CreateBoardInput{
			Name: req.Name,
			Type: req.Type,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, board)
	}
}

func getBoard(svc *application.BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		board, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

func listBoards(svc *application.BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		boards, err := svc.ListByProject(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, boards)
	}
}

func updateBoard(svc *application.BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.BoardPatch
		if err := c.Bind(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		board, err := svc.Update(c.Request().Context(), actorID(c), c.Param("id"), patch)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

func deleteBoard(svc *application.BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func boardIssueViews(svc *application.QueryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		views, err := svc.BoardIssues(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, views)
	}
}

// --- sprints ---

type createSprintRequest struct {
	BoardID   string `json:"board_id"`
	Name      string `json:"name"`
	Goal      string `json:"goal"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func createSprint(svc *application.SprintService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createSprintRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		sprint, err := svc.Create(c.Request().Context(), actorID(c), req.BoardID, application.CreateSprintInput{
			Name:      req.Name,
			Goal:      req.Goal,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, sprint)
	}
}

func getSprint(svc *application.SprintService) echo.HandlerFunc {
	return func(c echo.Context) error {
		sprint, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, sprint)
	}
}

func listSprints(svc *application.SprintService) echo.HandlerFunc {
	return func(c echo.Context) error {
		sprints, err := svc.ListByBoard(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, sprints)
	}
}

func updateSprint(svc *application.SprintService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.SprintPatch
		if err := c.Bind(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		sprint, err := svc.Update(c.Request().Context(), actorID(c), c.Param("id"), patch)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, sprint)
	}
}

func deleteSprint(svc *application.SprintService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// --- issues ---

type createIssueRequest struct {
	BoardID       string `json:"board_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	SprintID      string `json:"sprint_id"`
	AssigneeID    string `json:"assignee_id"`
	EstimateHours int    `json:"estimate_hours"`
	OrderInColumn *int   `json:"order_in_column"`
}

func createIssue(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createIssueRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		issue, err := svc.Create(c.Request().Context(), actorID(c), req.BoardID, application.CreateIssueInput{
			Title:         req.Title,
			Description:   req.Description,
			Type:          req.Type,
			Status:        req.Status,
			SprintID:      req.SprintID,
			AssigneeID:    req.AssigneeID,
			EstimateHours: req.EstimateHours,
			OrderInColumn: req.OrderInColumn,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, issue)
	}
}

func getIssue(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		issue, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, issue)
	}
}

func updateIssue(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.IssuePatch
		if err := c.Bind(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		issue, err := svc.Update(c.Request().Context(), actorID(c), c.Param("id"), patch)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, issue)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func updateIssueStatus(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req updateStatusRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		issue, err := svc.UpdateStatus(c.Request().Context(), actorID(c), c.Param("id"), req.Status)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, issue)
	}
}

func deleteIssue(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func listIssuesByBoard(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		issues, err := svc.ListByBoard(c.Request().Context(), c.Param("boardId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, issues)
	}
}

func listIssuesBySprint(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		issues, err := svc.ListBySprint(c.Request().Context(), c.Param("sprintId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, issues)
	}
}

// --- time logs and notes ---

type logTimeRequest struct {
	HoursSpent int    `json:"hours_spent"`
	Notes      string `json:"notes"`
}

func logTime(svc *application.TimeLogService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req logTimeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		entry, err := svc.Log(c.Request().Context(), actorID(c), c.Param("id"), req.HoursSpent, req.Notes)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, entry)
	}
}

func listTimeLogs(svc *application.TimeLogService) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := svc.ListByIssue(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}

type addNoteRequest struct {
	Body string `json:"body"`
}

func addNote(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req addNoteRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		note, err := svc.AddNote(c.Request().Context(), actorID(c), c.Param("id"), req.Body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, note)
	}
}

func listNotes(svc *application.IssueService) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes, err := svc.ListNotes(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, notes)
	}
}

// --- audit ---

func auditForEntity(svc *application.AuditService) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := svc.ForEntity(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}

func auditForType(svc *application.AuditService) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := svc.ForEntityType(c.Request().Context(), c.Param("type"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}
