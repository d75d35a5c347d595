// README: Trip criteria merge, readiness, and next-missing-field prompts.
package criteria

import (
	"strings"

	"flightdesk/internal/modules/session"
)

type Field string

const (
	FieldOrigin       Field = "origin"
	FieldDestination  Field = "destination"
	FieldDateOfTravel Field = "date_of_travel"
	FieldReturnDate   Field = "return_date"
	FieldJourneyType  Field = "journey_type"
	FieldTravelers    Field = "travelers"
	FieldFlightType   Field = "flight_type"
)

var prompts = map[Field]string{
	FieldOrigin:       "Where will you be flying from?",
	FieldDestination:  "Where would you like to fly to?",
	FieldDateOfTravel: "What date would you like to travel? Please use YYYY-MM-DD.",
	FieldReturnDate:   "When would you like to return? Please use YYYY-MM-DD.",
	FieldJourneyType:  "Is this a one-way or round-trip journey?",
	FieldTravelers:    "How many adults and children will be travelling?",
	FieldFlightType:   "Is this a domestic or international flight?",
}

// Merge overlays the non-empty parts of upd onto c. Nothing in c is ever cleared.
func Merge(c session.TripCriteria, upd session.CriteriaUpdate) session.TripCriteria {
	setIfPresent(&c.Origin, upd.Origin)
	setIfPresent(&c.Destination, upd.Destination)
	setIfPresent(&c.DateOfTravel, upd.DateOfTravel)
	setIfPresent(&c.ReturnDate, upd.ReturnDate)
	if jt, ok := normalizeJourneyType(upd.JourneyType); ok {
		c.JourneyType = jt
	}
	if ft, ok := normalizeFlightType(upd.FlightType); ok {
		c.FlightType = ft
	}
	if upd.NumAdults != nil && *upd.NumAdults >= 1 {
		c.NumAdults = *upd.NumAdults
	}
	if upd.NumChildren != nil && *upd.NumChildren >= 0 {
		c.NumChildren = *upd.NumChildren
	}
	return c
}

// Ready reports whether a search may run.
func Ready(c session.TripCriteria) bool {
	if c.Origin == "" || c.Destination == "" || c.DateOfTravel == "" {
		return false
	}
	if c.JourneyType == session.RoundTrip && c.ReturnDate == "" {
		return false
	}
	return true
}

// NextMissing returns the highest-priority field still unset. Fields after
// date_of_travel have search-time defaults, so a ready criteria can still
// report one of them.
func NextMissing(c session.TripCriteria) (Field, bool) {
	switch {
	case c.Origin == "":
		return FieldOrigin, true
	case c.Destination == "":
		return FieldDestination, true
	case c.DateOfTravel == "":
		return FieldDateOfTravel, true
	case c.JourneyType == session.RoundTrip && c.ReturnDate == "":
		return FieldReturnDate, true
	case c.JourneyType == "":
		return FieldJourneyType, true
	case c.NumAdults == 0:
		return FieldTravelers, true
	case c.FlightType == "":
		return FieldFlightType, true
	}
	return "", false
}

func Prompt(f Field) string {
	return prompts[f]
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func normalizeJourneyType(v string) (session.JourneyType, bool) {
	switch squash(v) {
	case "oneway", "single":
		return session.OneWay, true
	case "roundtrip", "return", "twoway":
		return session.RoundTrip, true
	}
	return "", false
}

func normalizeFlightType(v string) (session.FlightType, bool) {
	switch squash(v) {
	case "domestic", "local":
		return session.Domestic, true
	case "international", "abroad":
		return session.International, true
	}
	return "", false
}

func squash(v string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(v)))
}
