// README: Passenger slot-filling persisted through the session store.
package passenger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"flightdesk/internal/infra"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const (
	AllCollectedText = "All passengers' details have already been collected."
	unavailableText  = "I couldn't load your booking just now. Please send your details again."
)

var errAllCollected = errors.New("all passengers collected")

type Extractor interface {
	ExtractPassenger(ctx context.Context, utterance string) (session.PassengerRecord, error)
}

type Result struct {
	// Index is 0-based; -1 when every passenger was already collected.
	Index        int
	Record       session.PassengerRecord
	Missing      []string
	AllCollected bool
	Response     string
}

type Service struct {
	sessions *session.Service
	oracle   Extractor
	logger   *zap.Logger
	metrics  *infra.Metrics
}

func NewService(sessions *session.Service, oracle Extractor, logger *zap.Logger, metrics *infra.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, oracle: oracle, logger: logger, metrics: metrics}
}

func (s *Service) Extract(ctx context.Context, utterance string) session.PassengerRecord {
	rec, err := s.oracle.ExtractPassenger(ctx, utterance)
	if err != nil {
		s.metrics.OracleFailure("passenger")
		s.logger.Warn("passenger extraction failed", zap.Error(err))
		return session.PassengerRecord{}
	}
	return rec
}

// Apply merges extracted into the active passenger record. The required set
// follows the flight type stored at call time.
func (s *Service) Apply(ctx context.Context, id types.SessionID, extracted session.PassengerRecord) (Result, error) {
	var res Result
	sess, err := s.sessions.Update(ctx, id, func(sess *session.Session) error {
		c := sess.CriteriaOrEmpty()
		ft := c.EffectiveFlightType()
		total := c.TotalPassengers()

		idx, create, done := NextTarget(sess.Passengers, ft, total)
		if done {
			res = Result{Index: -1, AllCollected: true, Response: AllCollectedText}
			return errAllCollected
		}
		if create {
			sess.Passengers = append(sess.Passengers, session.PassengerRecord{})
		}
		rec := Merge(sess.Passengers[idx], extracted)
		sess.Passengers[idx] = rec

		res = Result{Index: idx, Record: rec, Missing: Missing(rec, ft)}
		_, _, res.AllCollected = NextTarget(sess.Passengers, ft, total)
		return nil
	})
	if errors.Is(err, errAllCollected) {
		return res, nil
	}
	if sess == nil {
		return Result{Index: -1, Response: unavailableText}, err
	}
	res.Response = describe(res)
	return res, err
}

func describe(res Result) string {
	n := res.Index + 1
	switch {
	case len(res.Missing) > 0:
		return fmt.Sprintf("Thanks. For passenger %d, please also provide: %s.", n, strings.Join(Labels(res.Missing), ", "))
	case res.AllCollected:
		return fmt.Sprintf("Passenger %d's details are saved. All passengers' details are now collected. You can confirm your booking.", n)
	default:
		return fmt.Sprintf("Passenger %d's details are saved. Please share the details of passenger %d.", n, n+1)
	}
}
