// README: Identifier value objects shared across modules.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// SessionID keys every piece of conversation state. One booking dialogue per id.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func (id SessionID) String() string {
	return string(id)
}

// Valid accepts the ids issued by NewSessionID as well as client-chosen
// alphanumeric ids (dashes and underscores allowed) up to 64 chars.
func (id SessionID) Valid() bool {
	if len(id) == 0 || len(id) > 64 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
