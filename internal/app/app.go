// README: Assembles the dialogue services from config, an oracle, and storage backends.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"flightdesk/internal/ai"
	"flightdesk/internal/config"
	"flightdesk/internal/infra"
	"flightdesk/internal/modules/booking"
	"flightdesk/internal/modules/convlog"
	"flightdesk/internal/modules/criteria"
	"flightdesk/internal/modules/dialogue"
	"flightdesk/internal/modules/intent"
	"flightdesk/internal/modules/passenger"
	"flightdesk/internal/modules/search"
	"flightdesk/internal/modules/session"
)

// Backends are the stateful pieces that differ between the server and the REPL.
type Backends struct {
	Store  session.Store
	Locker session.Locker
	// IntentCache and Sink may be nil.
	IntentCache intent.Cache
	Sink        convlog.Sink
	// Corrector is tried after the oracle when resolving place names; may be nil.
	Corrector search.NameCorrector
	// SearchHTTP overrides the search client's transport; nil uses a default client.
	SearchHTTP *http.Client
}

type Components struct {
	Sessions *session.Service
	Router   *dialogue.Router
}

func Build(cfg config.Config, oracle ai.Oracle, b Backends, logger *zap.Logger, metrics *infra.Metrics) (*Components, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions := session.NewService(b.Store, logger.Named("session"), metrics)

	classifier := intent.NewService(oracle, b.IntentCache, logger.Named("intent"), metrics)

	dir := search.DefaultDirectory()
	corrector := search.ChainCorrector{oracle}
	if b.Corrector != nil {
		corrector = append(corrector, b.Corrector)
	}
	client := search.NewClient(search.ClientConfig{
		URL:        cfg.Search.URL,
		APIKey:     cfg.Search.APIKey,
		SecretCode: cfg.Search.SecretCode,
		Timeout:    cfg.Search.Timeout,
		MaxRetries: cfg.Search.MaxRetries,
		RatePerSec: cfg.Search.RatePerSec,
		RateBurst:  cfg.Search.RateBurst,
	}, b.SearchHTTP, logger.Named("search"))
	profile := search.Profile{
		SupplierUID: cfg.Search.SupplierUID,
		PartnerID:   cfg.Search.PartnerID,
		ShortRef:    cfg.Search.ShortRef,
	}
	flights := search.NewService(
		sessions,
		search.NewResolver(dir, corrector, logger.Named("resolver")),
		client,
		dir,
		profile,
		oracle,
		logger.Named("search"),
		metrics,
	)

	handlers := dialogue.DefaultHandlers(dialogue.Deps{
		Criteria:   criteria.NewService(sessions, oracle, logger.Named("criteria"), metrics),
		Passengers: passenger.NewService(sessions, oracle, logger.Named("passenger"), metrics),
		Flights:    flights,
		Booking:    booking.NewService(sessions, logger.Named("booking")),
		Assistant:  oracle,
	})

	router, err := dialogue.NewRouter(
		classifier,
		handlers,
		sessions,
		b.Locker,
		b.Sink,
		logger.Named("dialogue"),
		metrics,
		dialogue.Config{TurnTimeout: cfg.Session.TurnTimeout},
	)
	if err != nil {
		return nil, err
	}
	return &Components{Sessions: sessions, Router: router}, nil
}
