// README: Intent classification over an oracle with cache and safe fallback.
package intent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"flightdesk/internal/infra"
)

// Classifier is the oracle call this service needs.
type Classifier interface {
	ClassifyIntent(ctx context.Context, utterance string) (string, error)
}

type Service struct {
	oracle  Classifier
	cache   Cache
	logger  *zap.Logger
	metrics *infra.Metrics
}

// NewService builds the classifier. cache may be nil.
func NewService(oracle Classifier, cache Cache, logger *zap.Logger, metrics *infra.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{oracle: oracle, cache: cache, logger: logger, metrics: metrics}
}

// Classify never fails: anything the oracle cannot answer becomes Other.
func (s *Service) Classify(ctx context.Context, utterance string) Intent {
	if strings.TrimSpace(utterance) == "" {
		return Other
	}

	if s.cache != nil {
		in, ok, err := s.cache.Get(ctx, utterance)
		if err != nil {
			s.logger.Warn("intent cache read failed", zap.Error(err))
		} else if ok {
			return in
		}
	}

	label, err := s.oracle.ClassifyIntent(ctx, utterance)
	if err != nil {
		s.metrics.OracleFailure("intent")
		s.logger.Warn("intent oracle failed", zap.Error(err))
		return Other
	}
	in, ok := Parse(label)
	if !ok {
		s.metrics.OracleFailure("intent")
		s.logger.Info("intent oracle returned unknown label", zap.String("label", label))
		return Other
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, utterance, in); err != nil {
			s.logger.Warn("intent cache write failed", zap.Error(err))
		}
	}
	return in
}
