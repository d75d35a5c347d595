// README: Per-turn entry point: lock, classify, dispatch, log, and record metrics.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"flightdesk/internal/infra"
	"flightdesk/internal/modules/convlog"
	"flightdesk/internal/modules/intent"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const (
	utf8BOM       = "\ufeff"
	logWriteLimit = 3 * time.Second
)

type Classifier interface {
	Classify(ctx context.Context, utterance string) intent.Intent
}

type Resetter interface {
	Reset(ctx context.Context, id types.SessionID) error
}

type Config struct {
	TurnTimeout time.Duration
}

type inflight struct {
	token  uint64
	cancel context.CancelFunc
}

type Router struct {
	classifier Classifier
	handlers   Handlers
	sessions   Resetter
	locker     session.Locker
	sink       convlog.Sink
	logger     *zap.Logger
	metrics    *infra.Metrics
	cfg        Config

	mu      sync.Mutex
	seq     uint64
	running map[types.SessionID]inflight
}

// NewRouter refuses a handler set that leaves any intent undispatched.
func NewRouter(
	classifier Classifier,
	handlers Handlers,
	sessions Resetter,
	locker session.Locker,
	sink convlog.Sink,
	logger *zap.Logger,
	metrics *infra.Metrics,
	cfg Config,
) (*Router, error) {
	if err := checkExhaustive(handlers); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = convlog.NewZapSink(logger)
	}
	return &Router{
		classifier: classifier,
		handlers:   handlers,
		sessions:   sessions,
		locker:     locker,
		sink:       sink,
		logger:     logger,
		metrics:    metrics,
		cfg:        cfg,
		running:    make(map[types.SessionID]inflight),
	}, nil
}

func checkExhaustive(h Handlers) error {
	var missing []string
	for _, in := range intent.All() {
		if h[in] == nil {
			missing = append(missing, in.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("dialogue: no handler for intents %s", strings.Join(missing, ", "))
	}
	return nil
}

// RouteBytes decodes raw input, dropping a BOM and replacing invalid UTF-8.
func (r *Router) RouteBytes(ctx context.Context, id types.SessionID, raw []byte) Reply {
	text := strings.TrimPrefix(string(raw), utf8BOM)
	return r.Route(ctx, id, strings.ToValidUTF8(text, "\uFFFD"))
}

// Route processes one turn to completion. It always returns a reply.
func (r *Router) Route(ctx context.Context, id types.SessionID, text string) Reply {
	start := time.Now()
	text = strings.TrimSpace(text)

	if r.cfg.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.TurnTimeout)
		defer cancel()
	}
	ctx, done := r.track(ctx, id)
	defer done()

	reply := r.lockedTurn(ctx, id, text)
	r.record(ctx, id, text, reply)
	r.metrics.ObserveTurn(reply.Intent.String(), time.Since(start).Seconds())
	return reply
}

// lockedTurn answers BusyText when the session lock cannot be taken in time.
func (r *Router) lockedTurn(ctx context.Context, id types.SessionID, text string) Reply {
	unlock, err := r.locker.Lock(ctx, id)
	if err != nil {
		r.logger.Warn("turn lock not acquired", zap.String("session_id", id.String()), zap.Error(err))
		return Reply{Response: BusyText, Suggestions: []string{}, Intent: intent.Other}
	}
	defer unlock()

	var reply Reply
	if text == "" {
		reply = Reply{Response: emptyUtteranceText, Intent: intent.Other}
	} else {
		reply = r.dispatch(ctx, id, text)
	}
	if reply.Suggestions == nil {
		reply.Suggestions = Suggestions(reply.Intent)
	}
	return reply
}

func (r *Router) dispatch(ctx context.Context, id types.SessionID, text string) Reply {
	in := r.classifier.Classify(ctx, text)
	reply, err := r.handlers[in](ctx, id, text)
	reply.Intent = in

	switch {
	case err == nil:
	case errors.Is(err, session.ErrPersistence):
		r.logger.Error("turn state not persisted",
			zap.String("session_id", id.String()), zap.String("intent", in.String()), zap.Error(err))
		reply.Response = strings.TrimSpace(reply.Response + "\n" + persistenceNote)
	default:
		r.logger.Warn("turn handler error",
			zap.String("session_id", id.String()), zap.String("intent", in.String()), zap.Error(err))
	}
	if reply.Response == "" {
		reply.Response = FallbackText
	}
	return reply
}

// record writes the turn even when the turn context has expired.
func (r *Router) record(ctx context.Context, id types.SessionID, text string, reply Reply) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logWriteLimit)
	defer cancel()
	err := r.sink.Record(ctx, convlog.Turn{
		SessionID: id,
		Utterance: text,
		Intent:    reply.Intent.String(),
		Response:  reply.Response,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		r.metrics.PersistenceFailure("conversation_log")
		r.logger.Warn("conversation log write failed", zap.String("session_id", id.String()), zap.Error(err))
	}
}

// track registers a cancel func so EndSession can abort the running turn.
func (r *Router) track(ctx context.Context, id types.SessionID) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.seq++
	token := r.seq
	r.running[id] = inflight{token: token, cancel: cancel}
	r.mu.Unlock()

	return ctx, func() {
		r.mu.Lock()
		if cur, ok := r.running[id]; ok && cur.token == token {
			delete(r.running, id)
		}
		r.mu.Unlock()
		cancel()
	}
}

// StartNewBooking clears all booking state for the session between turns.
func (r *Router) StartNewBooking(ctx context.Context, id types.SessionID) (Reply, error) {
	unlock, err := r.locker.Lock(ctx, id)
	if err != nil {
		return Reply{}, err
	}
	defer unlock()
	if err := r.sessions.Reset(ctx, id); err != nil {
		return Reply{}, err
	}
	return Reply{Response: NewBookingText, Suggestions: []string{}, Intent: intent.FlightBooking}, nil
}

// EndSession aborts any in-flight turn, then deletes the session state.
func (r *Router) EndSession(ctx context.Context, id types.SessionID) error {
	r.mu.Lock()
	if cur, ok := r.running[id]; ok {
		cur.cancel()
	}
	r.mu.Unlock()

	unlock, err := r.locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()
	return r.sessions.Reset(ctx, id)
}
