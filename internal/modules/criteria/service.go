// README: Criteria service: extraction via oracle and merge persisted through the session store.
package criteria

import (
	"context"
	"time"

	"go.uber.org/zap"

	"flightdesk/internal/infra"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

type Extractor interface {
	ExtractCriteria(ctx context.Context, utterance string, now time.Time) (session.CriteriaUpdate, error)
}

type Result struct {
	Criteria session.TripCriteria
	Ready    bool
	// Prompt asks for the next missing field; empty when Ready.
	Prompt string
}

type Service struct {
	sessions *session.Service
	oracle   Extractor
	logger   *zap.Logger
	metrics  *infra.Metrics
	now      func() time.Time
}

func NewService(sessions *session.Service, oracle Extractor, logger *zap.Logger, metrics *infra.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, oracle: oracle, logger: logger, metrics: metrics, now: time.Now}
}

// Extract degrades to an empty update when the oracle fails, so the caller
// re-asks for whatever is still missing.
func (s *Service) Extract(ctx context.Context, utterance string) session.CriteriaUpdate {
	upd, err := s.oracle.ExtractCriteria(ctx, utterance, s.now())
	if err != nil {
		s.metrics.OracleFailure("criteria")
		s.logger.Warn("criteria extraction failed", zap.Error(err))
		return session.CriteriaUpdate{}
	}
	return upd
}

// Apply merges upd into the session criteria, creating them on first use.
// On a persistence error the merged result is still returned.
func (s *Service) Apply(ctx context.Context, id types.SessionID, upd session.CriteriaUpdate) (Result, error) {
	sess, err := s.sessions.Update(ctx, id, func(sess *session.Session) error {
		merged := Merge(sess.CriteriaOrEmpty(), upd)
		sess.Criteria = &merged
		return nil
	})
	if sess == nil {
		return Result{Prompt: Prompt(FieldOrigin)}, err
	}
	return evaluate(sess.CriteriaOrEmpty()), err
}

func evaluate(c session.TripCriteria) Result {
	res := Result{Criteria: c, Ready: Ready(c)}
	if !res.Ready {
		if f, ok := NextMissing(c); ok {
			res.Prompt = Prompt(f)
		}
	}
	return res
}
