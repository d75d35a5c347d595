package ai

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// newLiveProvider talks to the real Gemini API. It only runs with
// FLIGHTDESK_LIVE_TESTS=1 and a GEMINI_API_KEY (from the env or the repo .env).
func newLiveProvider(t *testing.T) *GeminiProvider {
	t.Helper()
	if _, file, _, ok := runtime.Caller(0); ok {
		_ = godotenv.Load(filepath.Join(filepath.Dir(file), "..", "..", ".env"))
	}
	if os.Getenv("FLIGHTDESK_LIVE_TESTS") != "1" {
		t.Skip("set FLIGHTDESK_LIVE_TESTS=1 to call Gemini")
	}
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		t.Skip("GEMINI_API_KEY not set")
	}
	model := os.Getenv("FLIGHTDESK_GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	p, err := NewGeminiProvider(context.Background(), key, model, 30*time.Second)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestLiveClassifyAndExtract(t *testing.T) {
	p := newLiveProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	label, err := p.ClassifyIntent(ctx, "Hello there")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if label != "greeting" {
		t.Fatalf("expected greeting, got %q", label)
	}

	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	upd, err := p.ExtractCriteria(ctx, "I want to fly from Dhaka to Bangkok on 1 March, one way", now)
	if err != nil {
		t.Fatalf("extract criteria: %v", err)
	}
	if !strings.EqualFold(upd.Origin, "Dhaka") || !strings.EqualFold(upd.Destination, "Bangkok") {
		t.Fatalf("unexpected places %+v", upd)
	}
	if upd.DateOfTravel != "2025-03-01" {
		t.Fatalf("expected 2025-03-01, got %q", upd.DateOfTravel)
	}
}
