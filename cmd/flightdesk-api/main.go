// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"flightdesk/internal/ai"
	"flightdesk/internal/app"
	"flightdesk/internal/config"
	httptransport "flightdesk/internal/http"
	"flightdesk/internal/infra"
	"flightdesk/internal/maps"
	"flightdesk/internal/modules/convlog"
	"flightdesk/internal/modules/intent"
	"flightdesk/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := infra.NewMetrics("flightdesk", reg)

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("redis init", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	backends := app.Backends{
		Store:       session.NewRedisStore(redisClient, cfg.Session.TTL),
		Locker:      session.NewRedisLocker(redisClient, cfg.Session.LockTTL),
		IntentCache: intent.NewRedisCache(redisClient, cfg.AI.IntentTTL),
	}

	var turns *convlog.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		turns = convlog.NewStore(dbPool)
		backends.Sink = turns
	} else {
		logger.Info("FLIGHTDESK_DB_DSN not set, conversation turns go to the log only")
	}

	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocodeResolver(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		backends.Corrector = geocoder
	}

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model, cfg.AI.OracleTimeout)
	if err != nil {
		logger.Fatal("gemini init", zap.Error(err))
	}
	defer provider.Close()

	comp, err := app.Build(cfg, provider, backends, logger, metrics)
	if err != nil {
		logger.Fatal("wire services", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	deps := httptransport.RouterDeps{
		Dialogue:       comp.Router,
		Sessions:       comp.Sessions,
		Gatherer:       reg,
		Logger:         logger.Named("http"),
		RequestsPerMin: cfg.HTTP.RequestsPerMin,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
	if turns != nil {
		deps.Turns = turns
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("flightdesk api listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}
