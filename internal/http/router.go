// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"flightdesk/internal/http/handlers"
	"flightdesk/internal/http/middleware"
)

type RouterDeps struct {
	Dialogue handlers.Dialogue
	Sessions handlers.SessionReader
	// Turns may be nil when the conversation log is not backed by Postgres.
	Turns          handlers.TurnLister
	Gatherer       prometheus.Gatherer
	Logger         *zap.Logger
	RequestsPerMin int
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logging(logger))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	chat := handlers.NewChatHandler(deps.Dialogue)
	sessions := handlers.NewSessionHandler(deps.Dialogue, deps.Sessions, deps.Turns)
	limit := middleware.RateLimit(deps.RequestsPerMin, logger)

	api := r.Group("/api", limit)
	api.POST("/chat", chat.Chat)
	api.POST("/sessions/:id/turns", chat.Turn)
	api.GET("/sessions/:id", sessions.Get)
	api.POST("/sessions/:id/reset", sessions.Reset)
	api.DELETE("/sessions/:id", sessions.End)
	api.GET("/sessions/:id/turns", sessions.Turns)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
