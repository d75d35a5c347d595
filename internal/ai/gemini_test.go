package ai

import (
	"errors"
	"strings"
	"testing"
	"time"

	"flightdesk/internal/modules/session"
)

func TestCleanJSONString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"intent\":\"greeting\"}\n```", `{"intent":"greeting"}`},
		{"```{\"a\":1}```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := cleanJSONString(tt.in); got != tt.want {
			t.Fatalf("cleanJSONString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConstrainToKnown(t *testing.T) {
	known := []string{"Dhaka", "Bangkok", "Chittagong"}

	got, err := constrainToKnown(` "bangkok". `, known)
	if err != nil || got != "Bangkok" {
		t.Fatalf("expected Bangkok, got %q err=%v", got, err)
	}
	if _, err := constrainToKnown("Atlantis", known); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if _, err := constrainToKnown("", known); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for empty, got %v", err)
	}
}

func TestPromptsCarryInputs(t *testing.T) {
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	if p := criteriaPrompt("Dhaka to Bangkok tomorrow", now); !strings.Contains(p, "2025-02-10") {
		t.Fatalf("criteria prompt lacks anchor date: %s", p)
	}
	if p := intentPrompt("hi"); !strings.Contains(p, "passenger_info_manual_entry") {
		t.Fatalf("intent prompt lacks labels")
	}
	opts := []session.FlightOption{{CarrierName: "Biman Bangladesh Airlines", FlightNumber: "BG388", OfferID: "o-1"}}
	if p := selectionPrompt("the first one", opts); !strings.Contains(p, "1. Biman Bangladesh Airlines BG388") {
		t.Fatalf("selection prompt lacks options: %s", p)
	}
}

func TestSelectionHintEmpty(t *testing.T) {
	if !(SelectionHint{}).Empty() {
		t.Fatalf("zero hint should be empty")
	}
	if (SelectionHint{Index: 2}).Empty() {
		t.Fatalf("indexed hint should not be empty")
	}
}
