// README: Session service: load, mutate-and-save with conflict retry, reset.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"flightdesk/internal/infra"
	"flightdesk/internal/types"
)

const maxSaveAttempts = 3

type Service struct {
	store   Store
	logger  *zap.Logger
	metrics *infra.Metrics
}

func NewService(store Store, logger *zap.Logger, metrics *infra.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, metrics: metrics}
}

// Load returns the stored session, or a fresh unsaved one when none exists.
func (s *Service) Load(ctx context.Context, id types.SessionID) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id), nil
	}
	return sess, err
}

// Get returns ErrNotFound for a session that was never saved.
func (s *Service) Get(ctx context.Context, id types.SessionID) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Update loads the session, applies fn, and saves. Version conflicts re-run fn
// on a fresh copy. When the final save fails for any other reason the mutated
// session is still returned alongside an error wrapping ErrPersistence, so the
// caller can answer the turn from memory.
func (s *Service) Update(ctx context.Context, id types.SessionID, fn func(*Session) error) (*Session, error) {
	var sess *Session
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		var err error
		sess, err = s.Load(ctx, id)
		if err != nil {
			s.metrics.PersistenceFailure("load")
			return nil, fmt.Errorf("%w: load: %v", ErrPersistence, err)
		}
		if err := fn(sess); err != nil {
			return sess, err
		}
		err = s.store.Save(ctx, sess)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrConflict) {
			s.metrics.PersistenceFailure("save")
			s.logger.Warn("session save failed", zap.String("session_id", id.String()), zap.Error(err))
			return sess, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	s.metrics.PersistenceFailure("conflict")
	return sess, fmt.Errorf("%w: %v", ErrPersistence, ErrConflict)
}

// Reset drops every surface of the session so the next turn starts a new booking.
func (s *Service) Reset(ctx context.Context, id types.SessionID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.metrics.PersistenceFailure("delete")
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
