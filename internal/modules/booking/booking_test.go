package booking

import (
	"context"
	"strings"
	"testing"

	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

func complete(first string) session.PassengerRecord {
	return session.PassengerRecord{
		Title: "Mr", Gender: "Male", FirstName: first, LastName: "Foster",
		Email: "adam@gmail.com", Phone: "01856684559", DOB: "1990-01-01",
	}
}

func seed(t *testing.T, fn func(*session.Session)) (*Service, *session.Service, types.SessionID) {
	t.Helper()
	sessions := session.NewService(session.NewMemoryStore(), nil, nil)
	id := types.NewSessionID()
	if _, err := sessions.Update(context.Background(), id, func(s *session.Session) error {
		fn(s)
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewService(sessions, nil), sessions, id
}

func TestConfirmReportsEverythingMissing(t *testing.T) {
	svc, _, id := seed(t, func(s *session.Session) {
		s.Criteria = &session.TripCriteria{Origin: "Dhaka", Destination: "Bangkok", DateOfTravel: "2025-03-01", NumAdults: 2}
		s.Passengers = []session.PassengerRecord{{FirstName: "Adam"}}
	})
	got := svc.Confirm(context.Background(), id)
	for _, want := range []string{"a selected flight", "1 more passenger", "passenger 1: title"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestConfirmRechecksAgainstCurrentFlightType(t *testing.T) {
	svc, _, id := seed(t, func(s *session.Session) {
		s.Criteria = &session.TripCriteria{NumAdults: 1, FlightType: session.International}
		s.SelectedFlight = &session.FlightOption{TrackingID: "t", OfferID: "o"}
		s.Passengers = []session.PassengerRecord{complete("Adam")}
	})
	got := svc.Confirm(context.Background(), id)
	if !strings.Contains(got, "passport number") {
		t.Fatalf("international booking should require passport:\n%s", got)
	}
}

func TestConfirmIsIdempotentAndReadOnly(t *testing.T) {
	svc, sessions, id := seed(t, func(s *session.Session) {
		s.Criteria = &session.TripCriteria{Origin: "Dhaka", Destination: "Bangkok", DateOfTravel: "2025-03-01", NumAdults: 1}
		s.SelectedFlight = &session.FlightOption{CarrierName: "Biman Bangladesh Airlines", FlightNumber: "388", TrackingID: "trk-1", OfferID: "offer-1"}
		s.Passengers = []session.PassengerRecord{complete("Adam")}
	})
	ctx := context.Background()
	before, _ := sessions.Load(ctx, id)

	first := svc.Confirm(ctx, id)
	second := svc.Confirm(ctx, id)
	if first != second {
		t.Fatalf("confirmation not idempotent:\n%s\n---\n%s", first, second)
	}
	if !strings.HasPrefix(first, "Your booking is confirmed.") || !strings.Contains(first, "Passengers: 1") {
		t.Fatalf("unexpected confirmation:\n%s", first)
	}
	after, _ := sessions.Load(ctx, id)
	if after.Version != before.Version {
		t.Fatalf("confirm wrote state: v%d -> v%d", before.Version, after.Version)
	}
}

func TestReferenceStable(t *testing.T) {
	a := Reference(session.FlightOption{TrackingID: "t", OfferID: "o"})
	b := Reference(session.FlightOption{TrackingID: "t", OfferID: "o", Price: "100"})
	c := Reference(session.FlightOption{TrackingID: "t", OfferID: "p"})
	if a != b || a == c || !strings.HasPrefix(a, "FD-") || len(a) != 11 {
		t.Fatalf("unexpected references %s %s %s", a, b, c)
	}
}
