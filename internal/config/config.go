// README: Config loader with env defaults for HTTP, DB, Redis, oracles, and the flight search API.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type SearchConfig struct {
	URL         string
	APIKey      string
	SecretCode  string
	SupplierUID string
	PartnerID   string
	ShortRef    string
	Timeout     time.Duration
	MaxRetries  int
	RatePerSec  float64
	RateBurst   int
}

type SessionConfig struct {
	TTL         time.Duration
	LockTTL     time.Duration
	TurnTimeout time.Duration
}

type Config struct {
	Env  string
	HTTP struct {
		Addr           string
		RequestsPerMin int
		AllowedOrigins []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Session SessionConfig
	Search  SearchConfig
	AI      struct {
		GeminiKey     string
		Model         string
		OracleTimeout time.Duration
		IntentTTL     time.Duration
	}
	Maps struct {
		APIKey string
	}
}

var (
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required")
	ErrMissingSearchURL = errors.New("FLIGHTDESK_SEARCH_URL is required")
)

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Env = envOrDefault("FLIGHTDESK_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("FLIGHTDESK_HTTP_ADDR", ":8080")
	cfg.HTTP.RequestsPerMin = envOrDefaultInt("FLIGHTDESK_REQUESTS_PER_MIN", 60)
	cfg.HTTP.AllowedOrigins = envList("FLIGHTDESK_ALLOWED_ORIGINS", []string{"*"})
	// Empty DSN disables the Postgres conversation log.
	cfg.DB.DSN = os.Getenv("FLIGHTDESK_DB_DSN")
	cfg.Redis.Addr = envOrDefault("FLIGHTDESK_REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("FLIGHTDESK_REDIS_PASSWORD")
	cfg.Redis.DB = envOrDefaultInt("FLIGHTDESK_REDIS_DB", 0)

	cfg.Session.TTL = envOrDefaultDuration("FLIGHTDESK_SESSION_TTL", 24*time.Hour)
	cfg.Session.LockTTL = envOrDefaultDuration("FLIGHTDESK_TURN_LOCK_TTL", 90*time.Second)
	cfg.Session.TurnTimeout = envOrDefaultDuration("FLIGHTDESK_TURN_TIMEOUT", 60*time.Second)

	cfg.Search.URL = os.Getenv("FLIGHTDESK_SEARCH_URL")
	cfg.Search.APIKey = os.Getenv("FLIGHTDESK_SEARCH_API_KEY")
	cfg.Search.SecretCode = os.Getenv("FLIGHTDESK_SEARCH_SECRET_CODE")
	cfg.Search.SupplierUID = envOrDefault("FLIGHTDESK_SEARCH_SUPPLIER_UID", "F1TT00041")
	cfg.Search.PartnerID = envOrDefault("FLIGHTDESK_SEARCH_PARTNER_ID", "78")
	cfg.Search.ShortRef = envOrDefault("FLIGHTDESK_SEARCH_SHORT_REF", "12121212121")
	cfg.Search.Timeout = envOrDefaultDuration("FLIGHTDESK_SEARCH_TIMEOUT", 20*time.Second)
	cfg.Search.MaxRetries = envOrDefaultInt("FLIGHTDESK_SEARCH_RETRIES", 2)
	cfg.Search.RatePerSec = envOrDefaultFloat("FLIGHTDESK_SEARCH_RATE", 5)
	cfg.Search.RateBurst = envOrDefaultInt("FLIGHTDESK_SEARCH_BURST", 5)

	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("FLIGHTDESK_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.OracleTimeout = envOrDefaultDuration("FLIGHTDESK_ORACLE_TIMEOUT", 10*time.Second)
	cfg.AI.IntentTTL = envOrDefaultDuration("FLIGHTDESK_INTENT_CACHE_TTL", time.Hour)

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	if cfg.AI.GeminiKey == "" {
		return cfg, ErrMissingGeminiKey
	}
	if cfg.Search.URL == "" {
		return cfg, ErrMissingSearchURL
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envList splits a comma-separated variable, dropping blank entries.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
