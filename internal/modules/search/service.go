// README: Flight search gateway: readiness check, code resolution, search call, result persistence, selection.
package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"flightdesk/internal/ai"
	"flightdesk/internal/infra"
	"flightdesk/internal/modules/criteria"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const (
	NoFlightsText   = "No flights available. Please try again later."
	UnavailableText = "Flight search is unavailable right now. Please try again later."
	noResultsText   = "There are no flights to choose from yet. Ask me to show available flights first."
	noMatchText     = "I couldn't tell which flight you want. Please reply with the option number, for example \"option 1\"."
)

// Searcher is the search service call; *Client implements it.
type Searcher interface {
	Search(ctx context.Context, req Request) ([]byte, error)
}

type SelectionExtractor interface {
	ExtractSelection(ctx context.Context, utterance string, options []session.FlightOption) (ai.SelectionHint, error)
}

type Outcome struct {
	Response string
	Options  []session.FlightOption
	Selected *session.FlightOption
	// Found is true only when options were returned or a flight was selected.
	Found bool
}

type Service struct {
	sessions *session.Service
	resolver *Resolver
	client   Searcher
	dir      *Directory
	profile  Profile
	selector SelectionExtractor
	logger   *zap.Logger
	metrics  *infra.Metrics
}

func NewService(
	sessions *session.Service,
	resolver *Resolver,
	client Searcher,
	dir *Directory,
	profile Profile,
	selector SelectionExtractor,
	logger *zap.Logger,
	metrics *infra.Metrics,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: sessions,
		resolver: resolver,
		client:   client,
		dir:      dir,
		profile:  profile,
		selector: selector,
		logger:   logger,
		metrics:  metrics,
	}
}

// Search runs the stored criteria against the search service. Every failure
// is folded into Outcome.Response; the error is only ever a persistence error.
func (s *Service) Search(ctx context.Context, id types.SessionID) (Outcome, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.logger.Warn("search: session load failed", zap.String("session_id", id.String()), zap.Error(err))
		return Outcome{Response: UnavailableText}, fmt.Errorf("%w: %v", session.ErrPersistence, err)
	}
	c := sess.CriteriaOrEmpty()
	if !criteria.Ready(c) {
		f, _ := criteria.NextMissing(c)
		return Outcome{Response: criteria.Prompt(f)}, nil
	}

	originCode := s.resolver.Resolve(ctx, c.Origin)
	if originCode == "" {
		return Outcome{Response: fmt.Sprintf("I couldn't find an airport for %q. Which city or airport are you flying from?", c.Origin)}, nil
	}
	destCode := s.resolver.Resolve(ctx, c.Destination)
	if destCode == "" {
		return Outcome{Response: fmt.Sprintf("I couldn't find an airport for %q. Which city or airport are you flying to?", c.Destination)}, nil
	}

	req := BuildRequest(c, originCode, destCode, s.profile)
	body, err := s.client.Search(ctx, req)
	if err != nil {
		return Outcome{Response: s.failureText(err)}, nil
	}

	opts, err := Decode(body, s.dir)
	if err != nil {
		if errors.Is(err, ErrNoFlights) {
			s.metrics.SearchOutcome("empty")
			return Outcome{Response: NoFlightsText}, nil
		}
		s.metrics.SearchOutcome("malformed")
		s.logger.Warn("search response not decodable", zap.Error(err))
		return Outcome{Response: UnavailableText}, nil
	}
	s.metrics.SearchOutcome("ok")
	for _, o := range opts {
		if len(o.MissingFields) > 0 {
			s.logger.Info("search entry incomplete",
				zap.String("offer_id", o.OfferID), zap.Strings("missing", o.MissingFields))
		}
	}

	out := Outcome{Response: FormatOptions(opts), Options: opts, Found: true}
	_, err = s.sessions.Update(ctx, id, func(sess *session.Session) error {
		sess.LastResults = opts
		return nil
	})
	return out, err
}

func (s *Service) failureText(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		s.metrics.SearchOutcome("status")
		s.logger.Warn("flight search rejected", zap.Int("status", se.Code), zap.String("body", se.Body))
		return fmt.Sprintf("Flight search failed. Error: %d. Please try again later.", se.Code)
	}
	s.metrics.SearchOutcome("unavailable")
	s.logger.Warn("flight search unavailable", zap.Error(err))
	return UnavailableText
}

// Select stores the option the user picked from the last results.
func (s *Service) Select(ctx context.Context, id types.SessionID, utterance string) (Outcome, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return Outcome{Response: UnavailableText}, fmt.Errorf("%w: %v", session.ErrPersistence, err)
	}
	if len(sess.LastResults) == 0 {
		return Outcome{Response: noResultsText}, nil
	}

	idx, ok := matchSelection(utterance, sess.LastResults)
	if !ok && s.selector != nil {
		hint, err := s.selector.ExtractSelection(ctx, utterance, sess.LastResults)
		if err != nil {
			s.metrics.OracleFailure("selection")
			s.logger.Warn("selection extraction failed", zap.Error(err))
		} else if !hint.Empty() {
			idx, ok = matchHint(hint, sess.LastResults)
		}
	}
	if !ok {
		return Outcome{Response: noMatchText}, nil
	}

	chosen := sess.LastResults[idx]
	out := Outcome{Response: selectedText(chosen), Selected: &chosen, Found: true}
	_, err = s.sessions.Update(ctx, id, func(sess *session.Session) error {
		sess.SelectedFlight = &chosen
		return nil
	})
	return out, err
}

func selectedText(o session.FlightOption) string {
	return fmt.Sprintf("You selected %s %s from %s to %s, departing %s at %s, price %s. "+
		"Please upload your passport/NID or enter passenger details manually.",
		o.CarrierName, o.FlightNumber, o.OriginCode, o.DestinationCode, o.DepartureDate, o.DepartureTime, o.Price)
}
