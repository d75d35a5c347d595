// README: Session lifecycle handlers: inspect, start over, end, and read the turn log.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flightdesk/internal/modules/convlog"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const (
	defaultTurnLimit = 50
	maxTurnLimit     = 500
)

type SessionReader interface {
	Get(ctx context.Context, id types.SessionID) (*session.Session, error)
}

type TurnLister interface {
	List(ctx context.Context, id types.SessionID, limit int) ([]convlog.Turn, error)
}

type SessionHandler struct {
	dialogue Dialogue
	sessions SessionReader
	turns    TurnLister
}

// NewSessionHandler accepts a nil lister when no conversation log is configured.
func NewSessionHandler(d Dialogue, sessions SessionReader, turns TurnLister) *SessionHandler {
	return &SessionHandler{dialogue: d, sessions: sessions, turns: turns}
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

// Reset handles POST /api/sessions/:id/reset.
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	reply, err := h.dialogue.StartNewBooking(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newChatResp(id, reply))
}

// End handles DELETE /api/sessions/:id.
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	if err := h.dialogue.EndSession(c.Request.Context(), id); err != nil {
		writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Turns handles GET /api/sessions/:id/turns?limit=N.
func (h *SessionHandler) Turns(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	if h.turns == nil {
		writeError(c, http.StatusNotFound, "conversation log not configured")
		return
	}
	limit := defaultTurnLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxTurnLimit)
	}
	turns, err := h.turns.List(c.Request.Context(), id, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if turns == nil {
		turns = []convlog.Turn{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"session_id": id, "turns": turns})
}
