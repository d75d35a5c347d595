// README: Flight search request payload.
package search

import "flightdesk/internal/modules/session"

const airportType = "AIRPORT"

type Segment struct {
	DepartureAirportType string `json:"departure_airport_type"`
	DepartureAirport     string `json:"departure_airport"`
	ArrivalAirportType   string `json:"arrival_airport_type"`
	ArrivalAirport       string `json:"arrival_airport"`
	DepartureDate        string `json:"departure_date"`
}

type TeamMember struct {
	MemberID string `json:"member_id"`
	PaxType  string `json:"pax_type"`
}

// Profile carries the account-level identifiers the search service expects.
type Profile struct {
	SupplierUID string
	PartnerID   string
	ShortRef    string
}

// Request is the search payload. Nullable vendor fields are pointers left nil
// so they encode as null.
type Request struct {
	JourneyType         session.JourneyType `json:"journey_type"`
	Segment             []Segment           `json:"segment"`
	TravelersAdult      int                 `json:"travelers_adult"`
	TravelersChild      int                 `json:"travelers_child"`
	TravelersChildAge   []int               `json:"travelers_child_age"`
	TravelersInfants    int                 `json:"travelers_infants"`
	TravelersInfantsAge []int               `json:"travelers_infants_age"`
	FareType            *string             `json:"fare_type"`
	FareOption          *string             `json:"fare_option"`
	ContentType         *string             `json:"content_type"`
	PTCOption           *string             `json:"ptc_option"`
	AgencyEthnicList    *string             `json:"agency_ethnic_list"`
	PreferredCarrier    []string            `json:"preferred_carrier"`
	NonStopFlight       string              `json:"non_stop_flight"`
	BaggageOption       string              `json:"baggage_option"`
	BookingClass        string              `json:"booking_class"`
	SupplierUID         string              `json:"supplier_uid"`
	PartnerID           string              `json:"partner_id"`
	Language            string              `json:"language"`
	ShortRef            string              `json:"short_ref"`
	Version             *string             `json:"version"`
	TeamProfile         []TeamMember        `json:"team_profile,omitempty"`
}

// defaultTeamProfile is attached whenever no return segment is added.
var defaultTeamProfile = []TeamMember{
	{MemberID: "1", PaxType: "ADT"},
	{MemberID: "2", PaxType: "CNN"},
	{MemberID: "3", PaxType: "INF"},
}

// BuildRequest assumes c is ready and both codes are resolved.
func BuildRequest(c session.TripCriteria, originCode, destCode string, p Profile) Request {
	jt := c.EffectiveJourneyType()
	req := Request{
		JourneyType: jt,
		Segment: []Segment{{
			DepartureAirportType: airportType,
			DepartureAirport:     originCode,
			ArrivalAirportType:   airportType,
			ArrivalAirport:       destCode,
			DepartureDate:        c.DateOfTravel,
		}},
		TravelersAdult:      c.EffectiveAdults(),
		TravelersChild:      c.NumChildren,
		TravelersChildAge:   []int{},
		TravelersInfants:    0,
		TravelersInfantsAge: []int{},
		PreferredCarrier:    []string{},
		NonStopFlight:       "any",
		BaggageOption:       "any",
		BookingClass:        "Economy",
		SupplierUID:         p.SupplierUID,
		PartnerID:           p.PartnerID,
		Language:            "en",
		ShortRef:            p.ShortRef,
	}

	if jt == session.RoundTrip && c.ReturnDate != "" {
		req.Segment = append(req.Segment, Segment{
			DepartureAirportType: airportType,
			DepartureAirport:     destCode,
			ArrivalAirportType:   airportType,
			ArrivalAirport:       originCode,
			DepartureDate:        c.ReturnDate,
		})
	} else {
		req.TeamProfile = append([]TeamMember(nil), defaultTeamProfile...)
	}
	return req
}
