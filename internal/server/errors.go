package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes. Anything
// unclassified is an internal error and gets logged with its cause;
// the client only sees a generic message.
func writeError(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsInvalidArgument(err):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.ErrorErr(log.CatHTTP, "Request failed", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: reason})
}
