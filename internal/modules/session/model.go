// README: Session aggregate: trip criteria, passenger records, selected flight, last search results.
package session

import (
	"time"

	"flightdesk/internal/types"
)

type JourneyType string

const (
	OneWay    JourneyType = "OneWay"
	RoundTrip JourneyType = "RoundTrip"
)

type FlightType string

const (
	Domestic      FlightType = "domestic"
	International FlightType = "international"
)

// TripCriteria is the search record. Empty strings and zero counts mean "not provided".
type TripCriteria struct {
	Origin       string      `json:"origin"`
	Destination  string      `json:"destination"`
	DateOfTravel string      `json:"date_of_travel"`
	ReturnDate   string      `json:"return_date,omitempty"`
	JourneyType  JourneyType `json:"journey_type,omitempty"`
	NumAdults    int         `json:"num_adults"`
	NumChildren  int         `json:"num_children"`
	FlightType   FlightType  `json:"flight_type,omitempty"`
}

// EffectiveJourneyType falls back to OneWay when the user has not said.
func (c TripCriteria) EffectiveJourneyType() JourneyType {
	if c.JourneyType == "" {
		return OneWay
	}
	return c.JourneyType
}

func (c TripCriteria) EffectiveFlightType() FlightType {
	if c.FlightType == "" {
		return Domestic
	}
	return c.FlightType
}

func (c TripCriteria) EffectiveAdults() int {
	if c.NumAdults < 1 {
		return 1
	}
	return c.NumAdults
}

func (c TripCriteria) TotalPassengers() int {
	return c.EffectiveAdults() + c.NumChildren
}

// CriteriaUpdate is one turn's extraction. Counts are pointers so that an
// explicit zero differs from absence.
type CriteriaUpdate struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DateOfTravel string `json:"date_of_travel"`
	ReturnDate   string `json:"return_date"`
	JourneyType  string `json:"journey_type"`
	NumAdults    *int   `json:"num_adults"`
	NumChildren  *int   `json:"num_children"`
	FlightType   string `json:"flight_type"`
}

// PassengerRecord doubles as the extraction shape for passenger turns.
type PassengerRecord struct {
	Title          string `json:"title"`
	Gender         string `json:"gender"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DOB            string `json:"dob"`
	PassportNumber string `json:"passport_number"`
	Nationality    string `json:"nationality"`
	DateOfIssue    string `json:"date_of_issue"`
	DateOfExpiry   string `json:"date_of_expiry"`
}

// NotAvailable replaces any field the search service left out.
const NotAvailable = "N/A"

// FlightOption is one normalized search result. TrackingID plus OfferID is the
// handle needed to book it.
type FlightOption struct {
	CarrierCode       string   `json:"carrier_code"`
	CarrierName       string   `json:"carrier_name"`
	OperatingAirline  string   `json:"operating_airline"`
	FlightNumber      string   `json:"flight_number"`
	OriginCode        string   `json:"origin_code"`
	OriginName        string   `json:"origin_name"`
	DestinationCode   string   `json:"destination_code"`
	DestinationName   string   `json:"destination_name"`
	SeatsAvailable    string   `json:"seats_available"`
	Stops             int      `json:"stops"`
	StopsLabel        string   `json:"stops_label"`
	Price             string   `json:"price"`
	CabinClass        string   `json:"cabin_class"`
	ConnectingAirport string   `json:"connecting_airport,omitempty"`
	DepartureDate     string   `json:"departure_date"`
	DepartureTime     string   `json:"departure_time"`
	ArrivalDate       string   `json:"arrival_date"`
	ArrivalTime       string   `json:"arrival_time"`
	TrackingID        string   `json:"tracking_id"`
	OfferID           string   `json:"offer_id"`
	MissingFields     []string `json:"missing_fields,omitempty"`
}

type Session struct {
	ID             types.SessionID   `json:"session_id"`
	Version        int64             `json:"version"`
	Criteria       *TripCriteria     `json:"criteria,omitempty"`
	Passengers     []PassengerRecord `json:"passengers"`
	SelectedFlight *FlightOption     `json:"selected_flight,omitempty"`
	LastResults    []FlightOption    `json:"last_results"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func New(id types.SessionID) *Session {
	return &Session{ID: id}
}

// CriteriaOrEmpty returns a copy safe to read when criteria were never created.
func (s *Session) CriteriaOrEmpty() TripCriteria {
	if s == nil || s.Criteria == nil {
		return TripCriteria{}
	}
	return *s.Criteria
}
