// README: Booking confirmation: read-only completeness check and deterministic summary.
package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"flightdesk/internal/modules/passenger"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

const unavailableText = "I couldn't load your booking just now. Please try confirming again in a moment."

type Service struct {
	sessions *session.Service
	logger   *zap.Logger
}

func NewService(sessions *session.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, logger: logger}
}

// Confirm never writes. Identical stored state always yields identical text.
func (s *Service) Confirm(ctx context.Context, id types.SessionID) string {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.logger.Warn("confirm: session load failed", zap.String("session_id", id.String()), zap.Error(err))
		return unavailableText
	}
	missing := Check(sess)
	if len(missing) > 0 {
		return "Before I can confirm your booking, I still need:\n- " + strings.Join(missing, "\n- ")
	}
	return summary(sess)
}

// Check lists, in a stable order, everything that blocks confirmation.
func Check(sess *session.Session) []string {
	var out []string
	if sess.Criteria == nil {
		out = append(out, "your trip details (origin, destination, and travel date)")
	}
	if sess.SelectedFlight == nil {
		out = append(out, "a selected flight")
	}

	c := sess.CriteriaOrEmpty()
	ft := c.EffectiveFlightType()
	total := c.TotalPassengers()
	if got := len(sess.Passengers); got < total {
		out = append(out, fmt.Sprintf("details for %d more passenger(s) (%d of %d collected)", total-got, got, total))
	} else if got > total {
		out = append(out, fmt.Sprintf("%d passenger records but the trip is for %d traveller(s); please update the traveller count", got, total))
	}
	for i, rec := range sess.Passengers {
		if m := passenger.Missing(rec, ft); len(m) > 0 {
			out = append(out, fmt.Sprintf("passenger %d: %s", i+1, strings.Join(passenger.Labels(m), ", ")))
		}
	}
	return out
}

func summary(sess *session.Session) string {
	f := sess.SelectedFlight
	n := len(sess.Passengers)
	return fmt.Sprintf("Your booking is confirmed. Reference %s.\n"+
		"Flight: %s %s from %s (%s) to %s (%s), departing %s at %s, arriving %s at %s.\n"+
		"Passengers: %d. Lead passenger: %s %s %s. Fare: %s.",
		Reference(*f),
		f.CarrierName, f.FlightNumber, f.OriginName, f.OriginCode, f.DestinationName, f.DestinationCode,
		f.DepartureDate, f.DepartureTime, f.ArrivalDate, f.ArrivalTime,
		n, sess.Passengers[0].Title, sess.Passengers[0].FirstName, sess.Passengers[0].LastName, f.Price)
}

// Reference is a short code derived from the offer handle.
func Reference(f session.FlightOption) string {
	sum := sha256.Sum256([]byte(f.TrackingID + "|" + f.OfferID))
	return "FD-" + strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}
