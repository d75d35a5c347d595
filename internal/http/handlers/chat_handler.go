// README: Chat handlers: one user utterance in, one dialogue reply out.
package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flightdesk/internal/modules/dialogue"
	"flightdesk/internal/types"
)

const maxUtteranceBytes = 16 << 10

// Dialogue is the subset of *dialogue.Router the HTTP layer drives.
type Dialogue interface {
	Route(ctx context.Context, id types.SessionID, text string) dialogue.Reply
	RouteBytes(ctx context.Context, id types.SessionID, raw []byte) dialogue.Reply
	StartNewBooking(ctx context.Context, id types.SessionID) (dialogue.Reply, error)
	EndSession(ctx context.Context, id types.SessionID) error
}

type ChatHandler struct {
	dialogue Dialogue
}

func NewChatHandler(d Dialogue) *ChatHandler {
	return &ChatHandler{dialogue: d}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResp struct {
	SessionID types.SessionID `json:"session_id"`
	Intent    string          `json:"intent"`
	Response  string          `json:"response"`
	NextSteps []string        `json:"next_steps"`
}

func newChatResp(id types.SessionID, r dialogue.Reply) chatResp {
	steps := r.Suggestions
	if steps == nil {
		steps = []string{}
	}
	return chatResp{SessionID: id, Intent: r.Intent.String(), Response: r.Response, NextSteps: steps}
}

// Chat handles POST /api/chat. A missing session id starts a new session.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if len(req.Message) > maxUtteranceBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "message too long")
		return
	}

	id := types.SessionID(strings.TrimSpace(req.SessionID))
	if id == "" {
		id = types.NewSessionID()
	} else if !id.Valid() {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	reply := h.dialogue.Route(c.Request.Context(), id, req.Message)
	writeJSON(c, http.StatusOK, newChatResp(id, reply))
}

// Turn handles POST /api/sessions/:id/turns with the raw utterance as body.
func (h *ChatHandler) Turn(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUtteranceBytes+1))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(raw) > maxUtteranceBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "message too long")
		return
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	reply := h.dialogue.RouteBytes(c.Request.Context(), id, raw)
	writeJSON(c, http.StatusOK, newChatResp(id, reply))
}
