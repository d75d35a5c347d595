package ai

import (
	"context"
	"errors"
	"time"

	"flightdesk/internal/modules/session"
)

var (
	ErrEmptyResponse = errors.New("oracle returned no candidates")
	ErrNoMatch       = errors.New("oracle found no matching name")
)

// Oracle is the natural-language surface the dialogue modules consume.
// Modules depend on narrower slices of it so tests can stub a single call.
type Oracle interface {
	// ClassifyIntent returns the raw label; callers validate it against their closed set.
	ClassifyIntent(ctx context.Context, utterance string) (string, error)

	// ExtractCriteria pulls trip fields out of free text. now anchors relative dates.
	ExtractCriteria(ctx context.Context, utterance string, now time.Time) (session.CriteriaUpdate, error)

	ExtractPassenger(ctx context.Context, utterance string) (session.PassengerRecord, error)

	ExtractSelection(ctx context.Context, utterance string, options []session.FlightOption) (SelectionHint, error)

	// CorrectName maps a misspelt or colloquial place name onto one of known.
	// The result is always a member of known, or ErrNoMatch.
	CorrectName(ctx context.Context, candidate string, known []string) (string, error)

	// Answer is the free-form assistant for utterances no other handler owns.
	Answer(ctx context.Context, utterance string) (string, error)
}
