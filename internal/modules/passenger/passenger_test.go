package passenger

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

func domesticComplete(first string) session.PassengerRecord {
	return session.PassengerRecord{
		Title: "Mr", Gender: "Male", FirstName: first, LastName: "Foster",
		Email: "adam@gmail.com", Phone: "01856684559", DOB: "1990-01-01",
	}
}

func TestRequiredFields(t *testing.T) {
	dom := RequiredFields(session.Domestic)
	want := []string{"title", "gender", "first_name", "last_name", "email", "phone", "dob"}
	if !reflect.DeepEqual(dom, want) {
		t.Fatalf("domestic fields = %v", dom)
	}
	intl := RequiredFields(session.International)
	if len(intl) != 11 || intl[7] != "passport_number" {
		t.Fatalf("international fields = %v", intl)
	}
}

func TestFlightTypeSwitchReflagsMissingPassport(t *testing.T) {
	rec := domesticComplete("Adam")
	if !Complete(rec, session.Domestic) {
		t.Fatalf("record should be complete for domestic")
	}
	if Complete(rec, session.International) {
		t.Fatalf("record without passport must be incomplete for international")
	}
	missing := Missing(rec, session.International)
	if missing[0] != "passport_number" {
		t.Fatalf("expected passport_number first, got %v", missing)
	}

	idx, create, done := NextTarget([]session.PassengerRecord{rec}, session.International, 1)
	if idx != 0 || create || done {
		t.Fatalf("expected record 0 retargeted, got idx=%d create=%v done=%v", idx, create, done)
	}
}

func TestMergeNeverErases(t *testing.T) {
	rec := domesticComplete("Adam")
	got := Merge(rec, session.PassengerRecord{Email: "", PassportNumber: "A1234567"})
	if got.Email != "adam@gmail.com" || got.PassportNumber != "A1234567" {
		t.Fatalf("unexpected merge result %+v", got)
	}
}

func TestNextTarget(t *testing.T) {
	full := domesticComplete("Adam")
	partial := session.PassengerRecord{FirstName: "Eve"}
	tests := []struct {
		name    string
		records []session.PassengerRecord
		total   int
		idx     int
		create  bool
		done    bool
	}{
		{"empty list creates first", nil, 2, 0, true, false},
		{"first incomplete wins", []session.PassengerRecord{partial, full}, 2, 0, false, false},
		{"complete record skipped", []session.PassengerRecord{full, partial}, 2, 1, false, false},
		{"room for another", []session.PassengerRecord{full}, 2, 1, true, false},
		{"all collected", []session.PassengerRecord{full, full}, 2, -1, false, true},
	}
	for _, tt := range tests {
		idx, create, done := NextTarget(tt.records, session.Domestic, tt.total)
		if idx != tt.idx || create != tt.create || done != tt.done {
			t.Fatalf("%s: got (%d,%v,%v) want (%d,%v,%v)", tt.name, idx, create, done, tt.idx, tt.create, tt.done)
		}
	}
}

func newService(t *testing.T, c *session.TripCriteria) (*Service, types.SessionID) {
	t.Helper()
	sessions := session.NewService(session.NewMemoryStore(), nil, nil)
	id := types.NewSessionID()
	if _, err := sessions.Update(context.Background(), id, func(s *session.Session) error {
		s.Criteria = c
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewService(sessions, nil, nil, nil), id
}

func TestApplyFillsPassengersInOrder(t *testing.T) {
	ctx := context.Background()
	svc, id := newService(t, &session.TripCriteria{NumAdults: 2, FlightType: session.Domestic})

	res, err := svc.Apply(ctx, id, session.PassengerRecord{FirstName: "Adam", LastName: "Foster"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Index != 0 || !strings.Contains(res.Response, "passenger 1") || !strings.Contains(res.Response, "date of birth") {
		t.Fatalf("unexpected first result %+v", res)
	}

	res, _ = svc.Apply(ctx, id, domesticComplete("Adam"))
	if res.Index != 0 || len(res.Missing) != 0 || !strings.Contains(res.Response, "passenger 2") {
		t.Fatalf("expected request for passenger 2, got %+v", res)
	}

	res, _ = svc.Apply(ctx, id, domesticComplete("Eve"))
	if res.Index != 1 || !res.AllCollected {
		t.Fatalf("expected second passenger complete, got %+v", res)
	}

	res, _ = svc.Apply(ctx, id, domesticComplete("Mallory"))
	if !res.AllCollected || res.Response != AllCollectedText || res.Index != -1 {
		t.Fatalf("expected terminal response, got %+v", res)
	}
}

func TestApplyAllCollectedWritesNothing(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewService(session.NewMemoryStore(), nil, nil)
	id := types.NewSessionID()
	before, _ := sessions.Update(ctx, id, func(s *session.Session) error {
		s.Criteria = &session.TripCriteria{NumAdults: 1}
		s.Passengers = []session.PassengerRecord{domesticComplete("Adam")}
		return nil
	})
	svc := NewService(sessions, nil, nil, nil)

	if _, err := svc.Apply(ctx, id, session.PassengerRecord{FirstName: "Changed"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	after, _ := sessions.Load(ctx, id)
	if after.Version != before.Version || after.Passengers[0].FirstName != "Adam" {
		t.Fatalf("terminal apply modified state: v%d -> v%d %+v", before.Version, after.Version, after.Passengers)
	}
}

type failingExtractor struct{}

func (failingExtractor) ExtractPassenger(context.Context, string) (session.PassengerRecord, error) {
	return session.PassengerRecord{FirstName: "ignored"}, errors.New("oracle down")
}

func TestExtractDegrades(t *testing.T) {
	svc := NewService(nil, failingExtractor{}, nil, nil)
	if got := svc.Extract(context.Background(), "My name is Adam"); got != (session.PassengerRecord{}) {
		t.Fatalf("expected empty record, got %+v", got)
	}
}
