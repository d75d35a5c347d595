package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flightdesk/internal/ai"
	"flightdesk/internal/config"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const oneFlight = `{"data":[{"tracking_id":"trk-1","filter":{"carrier_operating":"BS","price":9800,
"departure_departure_time":"2025-03-01T08:00:00+06:00","arrival_departure_time":"2025-03-01T08:55:00+06:00",
"cabin_class":"Economy","id":"offer-1"},"flight_group":[{"routes":[{
"operating":{"carrier_name":"US-Bangla Airlines","flight_number":"BS141"},"origin":"DAC","destination":"CGP"}]}]}]}`

type fakeOracle struct{}

func (fakeOracle) ClassifyIntent(context.Context, string) (string, error) {
	return "flight_booking", nil
}

func (fakeOracle) ExtractCriteria(context.Context, string, time.Time) (session.CriteriaUpdate, error) {
	adults := 1
	return session.CriteriaUpdate{
		Origin:       "Dhaka",
		Destination:  "Chittagong",
		DateOfTravel: "2025-03-01",
		JourneyType:  "OneWay",
		NumAdults:    &adults,
		FlightType:   "domestic",
	}, nil
}

func (fakeOracle) ExtractPassenger(context.Context, string) (session.PassengerRecord, error) {
	return session.PassengerRecord{}, nil
}

func (fakeOracle) ExtractSelection(context.Context, string, []session.FlightOption) (ai.SelectionHint, error) {
	return ai.SelectionHint{}, nil
}

func (fakeOracle) CorrectName(context.Context, string, []string) (string, error) {
	return "", ai.ErrNoMatch
}

func (fakeOracle) Answer(context.Context, string) (string, error) {
	return "ok", nil
}

func TestBuildRunsSearchWhenCriteriaReady(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneFlight))
	}))
	defer srv.Close()

	var cfg config.Config
	cfg.Search.URL = srv.URL
	cfg.Search.APIKey = "key-1"
	cfg.Search.Timeout = 2 * time.Second
	cfg.Session.TurnTimeout = 5 * time.Second

	comp, err := Build(cfg, fakeOracle{}, Backends{
		Store:  session.NewMemoryStore(),
		Locker: session.NewMemoryLocker(),
	}, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	id := types.NewSessionID()
	reply := comp.Router.Route(context.Background(), id, "Book a flight from Dhaka to Chittagong on 1 March")
	if !strings.Contains(reply.Response, "I found 1 flight") {
		t.Fatalf("expected search results, got %q", reply.Response)
	}
	if gotKey != "key-1" {
		t.Fatalf("search api key not sent, got %q", gotKey)
	}

	sess, err := comp.Sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(sess.LastResults) != 1 || sess.LastResults[0].OfferID != "offer-1" {
		t.Fatalf("results not persisted: %+v", sess.LastResults)
	}
}
