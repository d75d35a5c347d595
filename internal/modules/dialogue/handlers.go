// README: One handler per intent; each returns the reply text and any persistence error.
package dialogue

import (
	"context"
	"errors"
	"strings"

	"flightdesk/internal/modules/criteria"
	"flightdesk/internal/modules/intent"
	"flightdesk/internal/modules/passenger"
	"flightdesk/internal/modules/search"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

type CriteriaFiller interface {
	Extract(ctx context.Context, utterance string) session.CriteriaUpdate
	Apply(ctx context.Context, id types.SessionID, upd session.CriteriaUpdate) (criteria.Result, error)
}

type PassengerFiller interface {
	Extract(ctx context.Context, utterance string) session.PassengerRecord
	Apply(ctx context.Context, id types.SessionID, rec session.PassengerRecord) (passenger.Result, error)
}

type FlightGateway interface {
	Search(ctx context.Context, id types.SessionID) (search.Outcome, error)
	Select(ctx context.Context, id types.SessionID, utterance string) (search.Outcome, error)
}

type Confirmer interface {
	Confirm(ctx context.Context, id types.SessionID) string
}

type Assistant interface {
	Answer(ctx context.Context, utterance string) (string, error)
}

// Handler answers one turn. A nil Suggestions in the reply means "use the
// static list for the intent".
type Handler func(ctx context.Context, id types.SessionID, text string) (Reply, error)

type Handlers map[intent.Intent]Handler

// Deps are the collaborators the default handlers dispatch to. Assistant may be nil.
type Deps struct {
	Criteria   CriteriaFiller
	Passengers PassengerFiller
	Flights    FlightGateway
	Booking    Confirmer
	Assistant  Assistant
}

// DefaultHandlers wires every intent to its component.
func DefaultHandlers(d Deps) Handlers {
	collect := func(ctx context.Context, id types.SessionID, text string) (Reply, error) {
		res, err := d.Criteria.Apply(ctx, id, d.Criteria.Extract(ctx, text))
		if !res.Ready {
			return Reply{Response: res.Prompt}, err
		}
		out, serr := d.Flights.Search(ctx, id)
		return Reply{Response: out.Response}, errors.Join(err, serr)
	}

	h := Handlers{
		intent.Greeting:                 canned(GreetingText),
		intent.FileUpload:               canned(FileUploadText),
		intent.PassengerInfoManualEntry: canned(ManualEntryText),
		intent.FlightQuery: func(ctx context.Context, id types.SessionID, _ string) (Reply, error) {
			out, err := d.Flights.Search(ctx, id)
			return Reply{Response: out.Response}, err
		},
		intent.FlightSelection: func(ctx context.Context, id types.SessionID, text string) (Reply, error) {
			out, err := d.Flights.Select(ctx, id, text)
			return Reply{Response: out.Response}, err
		},
		intent.PassengerDetails: func(ctx context.Context, id types.SessionID, text string) (Reply, error) {
			res, err := d.Passengers.Apply(ctx, id, d.Passengers.Extract(ctx, text))
			reply := Reply{Response: res.Response}
			if res.AllCollected && res.Index < 0 {
				reply.Suggestions = append([]string(nil), allCollectedSuggestions...)
			}
			return reply, err
		},
		intent.ConfirmBooking: func(ctx context.Context, id types.SessionID, _ string) (Reply, error) {
			return Reply{Response: d.Booking.Confirm(ctx, id)}, nil
		},
		intent.Other: func(ctx context.Context, _ types.SessionID, text string) (Reply, error) {
			if d.Assistant == nil {
				return Reply{Response: FallbackText}, nil
			}
			answer, err := d.Assistant.Answer(ctx, text)
			if err != nil || strings.TrimSpace(answer) == "" {
				return Reply{Response: FallbackText}, nil
			}
			return Reply{Response: answer}, nil
		},
	}
	for _, in := range intent.All() {
		if in.CollectsCriteria() {
			h[in] = collect
		}
	}
	return h
}

func canned(text string) Handler {
	return func(context.Context, types.SessionID, string) (Reply, error) {
		return Reply{Response: text}, nil
	}
}
