package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("FLIGHTDESK_SEARCH_URL", "http://search.local/flight/search")

	_, err := Load()
	if !errors.Is(err, ErrMissingGeminiKey) {
		t.Fatalf("expected ErrMissingGeminiKey, got %v", err)
	}
}

func TestLoadRequiresSearchURL(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("FLIGHTDESK_SEARCH_URL", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingSearchURL) {
		t.Fatalf("expected ErrMissingSearchURL, got %v", err)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("FLIGHTDESK_SEARCH_URL", "http://search.local/flight/search")
	t.Setenv("FLIGHTDESK_SEARCH_TIMEOUT", "3s")
	t.Setenv("FLIGHTDESK_SEARCH_RETRIES", "not-a-number")
	t.Setenv("FLIGHTDESK_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Search.Timeout != 3*time.Second {
		t.Errorf("search timeout = %v, want 3s", cfg.Search.Timeout)
	}
	if cfg.Search.MaxRetries != 2 {
		t.Errorf("invalid retries should fall back to default 2, got %d", cfg.Search.MaxRetries)
	}
	if cfg.Search.SupplierUID != "F1TT00041" {
		t.Errorf("unexpected supplier uid %q", cfg.Search.SupplierUID)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production env")
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("FLIGHTDESK_SEARCH_URL", "http://search.local/flight/search")
	t.Setenv("FLIGHTDESK_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.HTTP.AllowedOrigins)
	}
}
