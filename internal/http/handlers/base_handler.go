// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrLockTimeout), errors.Is(err, session.ErrConflict):
		writeError(c, http.StatusConflict, "session is busy")
	case errors.Is(err, session.ErrPersistence):
		writeError(c, http.StatusServiceUnavailable, "session store unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// sessionParam reads and validates the :id path segment, writing a 400 on failure.
func sessionParam(c *gin.Context) (types.SessionID, bool) {
	id := types.SessionID(strings.TrimSpace(c.Param("id")))
	if !id.Valid() {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return "", false
	}
	return id, true
}
