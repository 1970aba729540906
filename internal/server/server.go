// Package server exposes the tracker over HTTP. Handlers are thin
// plumbing: decode, call the application service, encode. All domain
// rules live below in internal/tracker.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/tracker/application"
)

// Services bundles the application services the HTTP layer fronts.
type Services struct {
	Directory *application.DirectoryService
	Projects  *application.ProjectService
	Boards    *application.BoardService
	Sprints   *application.SprintService
	Issues    *application.IssueService
	TimeLogs  *application.TimeLogService
	Query     *application.QueryService
	Audit     *application.AuditService
}

// Server wraps an echo instance with the tracker routes registered.
type Server struct {
	echo *echo.Echo
	addr string
}

// New builds the server and wires up all routes.
func New(addr string, svc Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.POST("/organizations", createOrganization(svc.Directory))
	api.GET("/organizations", listOrganizations(svc.Directory))
	api.GET("/organizations/:id", getOrganization(svc.Directory))
	api.GET("/organizations/:id/projects", listProjects(svc.Projects))

	api.POST("/users", createUser(svc.Directory))
	api.GET("/users", listUsers(svc.Directory))
	api.GET("/users/:id", getUser(svc.Directory))

	api.POST("/projects", createProject(svc.Projects))
	api.GET("/projects/:id", getProject(svc.Projects))
	api.PUT("/projects/:id", updateProject(svc.Projects))
	api.DELETE("/projects/:id", deleteProject(svc.Projects))
	api.GET("/projects/:id/overview", projectOverview(svc.Query))
	api.GET("/projects/:id/boards", listBoards(svc.Boards))

	api.POST("/boards", createBoard(svc.Boards))
	api.GET("/boards/:id", getBoard(svc.Boards))
	api.PUT("/boards/:id", updateBoard(svc.Boards))
	api.DELETE("/boards/:id", deleteBoard(svc.Boards))
	api.GET("/boards/:id/issues", boardIssueViews(svc.Query))
	api.GET("/boards/:id/sprints", listSprints(svc.Sprints))

	api.POST("/sprints", createSprint(svc.Sprints))
	api.GET("/sprints/:id", getSprint(svc.Sprints))
	api.PUT("/sprints/:id", updateSprint(svc.Sprints))
	api.DELETE("/sprints/:id", deleteSprint(svc.Sprints))

	api.POST("/issues", createIssue(svc.Issues))
	api.GET("/issues/:id", getIssue(svc.Issues))
	api.PUT("/issues/:id", updateIssue(svc.Issues))
	api.PATCH("/issues/:id/status", updateIssueStatus(svc.Issues))
	api.DELETE("/issues/:id", deleteIssue(svc.Issues))
	api.GET("/issues/board/:boardId", listIssuesByBoard(svc.Issues))
	api.GET("/issues/sprint/:sprintId", listIssuesBySprint(svc.Issues))

	api.POST("/issues/:id/timelogs", logTime(svc.TimeLogs))
	api.GET("/issues/:id/timelogs", listTimeLogs(svc.TimeLogs))
	api.POST("/issues/:id/notes", addNote(svc.Issues))
	api.GET("/issues/:id/notes", listNotes(svc.Issues))

	api.GET("/audit/entity/:id", auditForEntity(svc.Audit))
	api.GET("/audit/type/:type", auditForType(svc.Audit))

	return &Server{echo: e, addr: addr}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	log.Info(log.CatHTTP, "HTTP server listening", "addr", s.addr)
	err := s.echo.Start(s.addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		log.Debug(log.CatHTTP, "Request handled",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

// actorID identifies the acting user for audit attribution. Auth is an
// external concern; absent the header we attribute to "anonymous".
func actorID(c echo.Context) string {
	if id := c.Request().Header.Get("X-Actor-Id"); id != "" {
		return id
	}
	return "anonymous"
}
