package intent

import (
	"context"
	"errors"
	"testing"
)

type stubClassifier struct {
	label string
	err   error
	calls int
}

func (s *stubClassifier) ClassifyIntent(context.Context, string) (string, error) {
	s.calls++
	return s.label, s.err
}

type mapCache map[string]Intent

func (m mapCache) Get(_ context.Context, u string) (Intent, bool, error) {
	in, ok := m[normalize(u)]
	return in, ok, nil
}

func (m mapCache) Put(_ context.Context, u string, in Intent) error {
	m[normalize(u)] = in
	return nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		label string
		want  Intent
		ok    bool
	}{
		{"greeting", Greeting, true},
		{" Flight_Booking ", FlightBooking, true},
		{"booking_confirmation", ConfirmBooking, true},
		{"passenger_info_manual_entry", PassengerInfoManualEntry, true},
		{"weather", Other, false},
		{"", Other, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Parse(%q) = %s,%v want %s,%v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAllHasElevenDistinct(t *testing.T) {
	seen := map[Intent]bool{}
	for _, in := range All() {
		seen[in] = true
	}
	if len(seen) != 11 {
		t.Fatalf("expected 11 intents, got %d", len(seen))
	}
}

func TestClassifyFallsBackToOther(t *testing.T) {
	tests := []struct {
		name   string
		oracle *stubClassifier
		text   string
		want   Intent
		calls  int
	}{
		{"oracle error", &stubClassifier{err: errors.New("timeout")}, "hi", Other, 1},
		{"unknown label", &stubClassifier{label: "weather"}, "is it raining", Other, 1},
		{"empty input skips oracle", &stubClassifier{label: "greeting"}, "   ", Other, 0},
		{"valid label", &stubClassifier{label: "flight_query"}, "show flights", FlightQuery, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.oracle, nil, nil, nil)
			if got := svc.Classify(context.Background(), tt.text); got != tt.want {
				t.Fatalf("Classify = %s, want %s", got, tt.want)
			}
			if tt.oracle.calls != tt.calls {
				t.Fatalf("oracle calls = %d, want %d", tt.oracle.calls, tt.calls)
			}
		})
	}
}

func TestClassifyIsDeterministicThroughCache(t *testing.T) {
	oracle := &stubClassifier{label: "greeting"}
	svc := NewService(oracle, mapCache{}, nil, nil)
	ctx := context.Background()

	first := svc.Classify(ctx, "Hello  there")
	oracle.label = "other"
	second := svc.Classify(ctx, "hello there")
	if first != Greeting || second != Greeting {
		t.Fatalf("expected cached greeting twice, got %s then %s", first, second)
	}
	if oracle.calls != 1 {
		t.Fatalf("oracle should be called once, got %d", oracle.calls)
	}
}

func TestCacheKeyNormalizes(t *testing.T) {
	if cacheKey("Book  a FLIGHT") != cacheKey("book a flight") {
		t.Fatalf("cache keys differ for equivalent utterances")
	}
}
