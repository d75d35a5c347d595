// README: Conversation turn record and the sink contract the dialogue router writes to.
package convlog

import (
	"context"
	"time"

	"flightdesk/internal/types"
)

type Turn struct {
	ID        int64           `json:"id"`
	SessionID types.SessionID `json:"session_id"`
	Utterance string          `json:"utterance"`
	Intent    string          `json:"intent"`
	Response  string          `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

type Sink interface {
	Record(ctx context.Context, t Turn) error
}
