// README: Staged decoding of search responses into flat flight options.
package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightdesk/internal/modules/session"
)

var (
	ErrNoFlights = errors.New("no flights available")
	ErrMalformed = errors.New("malformed search response")
)

// flexString accepts a JSON string or number; anything else leaves it unset.
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.value, f.set = s, s != ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		f.value, f.set = n.String(), true
	}
	return nil
}

type responseDoc struct {
	Data []entryDoc `json:"data"`
}

type entryDoc struct {
	TrackingID  flexString `json:"tracking_id"`
	Filter      *filterDoc `json:"filter"`
	FlightGroup []groupDoc `json:"flight_group"`
}

type filterDoc struct {
	CarrierOperating  flexString `json:"carrier_operating"`
	Price             flexString `json:"price"`
	DepartureTime     flexString `json:"departure_departure_time"`
	ArrivalTime       flexString `json:"arrival_departure_time"`
	CabinClass        flexString `json:"cabin_class"`
	ConnectingAirport flexString `json:"connecting_airport"`
	ID                flexString `json:"id"`
}

type groupDoc struct {
	NoOfStopsTitle flexString `json:"no_of_stops_title"`
	Routes         []routeDoc `json:"routes"`
}

type routeDoc struct {
	Operating          *operatingDoc `json:"operating"`
	Origin             flexString    `json:"origin"`
	OriginAirport      *airportDoc   `json:"origin_airport"`
	Destination        flexString    `json:"destination"`
	DestinationAirport *airportDoc   `json:"destination_airport"`
	BookingClass       *bookingDoc   `json:"booking_class"`
}

type operatingDoc struct {
	CarrierName  flexString `json:"carrier_name"`
	FlightNumber flexString `json:"flight_number"`
}

type airportDoc struct {
	Name flexString `json:"name"`
}

type bookingDoc struct {
	SeatAvailable flexString `json:"seat_available"`
}

// collector assigns each field and remembers the path of anything absent.
type collector struct {
	missing []string
}

func (c *collector) take(path string, v flexString) string {
	if !v.set {
		c.missing = append(c.missing, path)
		return session.NotAvailable
	}
	return v.value
}

// Decode flattens a 2xx search body. An absent or empty data array is ErrNoFlights.
func Decode(body []byte, dir *Directory) ([]session.FlightOption, error) {
	var doc responseDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Data) == 0 {
		return nil, ErrNoFlights
	}

	trackingID := doc.Data[0].TrackingID
	out := make([]session.FlightOption, 0, len(doc.Data))
	for _, e := range doc.Data {
		out = append(out, decodeEntry(e, trackingID, dir))
	}
	return out, nil
}

func decodeEntry(e entryDoc, trackingID flexString, dir *Directory) session.FlightOption {
	var c collector
	var opt session.FlightOption

	opt.TrackingID = c.take("data[0].tracking_id", trackingID)

	f := e.Filter
	if f == nil {
		c.missing = append(c.missing, "filter")
		f = &filterDoc{}
	}
	opt.CarrierCode = c.take("filter.carrier_operating", f.CarrierOperating)
	opt.CarrierName = opt.CarrierCode
	if f.CarrierOperating.set {
		opt.CarrierName = dir.CarrierName(opt.CarrierCode)
	}
	opt.Price = c.take("filter.price", f.Price)
	opt.CabinClass = c.take("filter.cabin_class", f.CabinClass)
	opt.OfferID = c.take("filter.id", f.ID)
	opt.ConnectingAirport = f.ConnectingAirport.value
	opt.DepartureDate, opt.DepartureTime = splitTimestamp(&c, "filter.departure_departure_time", f.DepartureTime)
	opt.ArrivalDate, opt.ArrivalTime = splitTimestamp(&c, "filter.arrival_departure_time", f.ArrivalTime)

	var g groupDoc
	if len(e.FlightGroup) == 0 {
		c.missing = append(c.missing, "flight_group[0]")
	} else {
		g = e.FlightGroup[0]
	}
	opt.StopsLabel = c.take("flight_group[0].no_of_stops_title", g.NoOfStopsTitle)
	if len(g.Routes) > 1 {
		opt.Stops = len(g.Routes) - 1
	}

	var r routeDoc
	if len(g.Routes) == 0 {
		c.missing = append(c.missing, "flight_group[0].routes[0]")
	} else {
		r = g.Routes[0]
	}
	const route = "flight_group[0].routes[0]."
	op := r.Operating
	if op == nil {
		op = &operatingDoc{}
	}
	opt.OperatingAirline = c.take(route+"operating.carrier_name", op.CarrierName)
	opt.FlightNumber = c.take(route+"operating.flight_number", op.FlightNumber)
	opt.OriginCode = c.take(route+"origin", r.Origin)
	opt.OriginName = c.take(route+"origin_airport.name", airportName(r.OriginAirport))
	opt.DestinationCode = c.take(route+"destination", r.Destination)
	opt.DestinationName = c.take(route+"destination_airport.name", airportName(r.DestinationAirport))
	bc := r.BookingClass
	if bc == nil {
		bc = &bookingDoc{}
	}
	opt.SeatsAvailable = c.take(route+"booking_class.seat_available", bc.SeatAvailable)

	opt.MissingFields = c.missing
	return opt
}

func airportName(a *airportDoc) flexString {
	if a == nil {
		return flexString{}
	}
	return a.Name
}

// splitTimestamp returns the wall-clock date and time as written, dropping
// the UTC offset.
func splitTimestamp(c *collector, path string, v flexString) (string, string) {
	raw := c.take(path, v)
	if raw == session.NotAvailable {
		return session.NotAvailable, session.NotAvailable
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", raw)
	}
	if err != nil {
		c.missing = append(c.missing, path)
		return session.NotAvailable, session.NotAvailable
	}
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

// FormatOptions renders a plain-text listing the user can pick from.
func FormatOptions(opts []session.FlightOption) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d flight%s:\n", len(opts), plural(len(opts)))
	for i, o := range opts {
		fmt.Fprintf(&b, "%d. %s %s, %s %s -> %s %s, %s, %s, price %s\n",
			i+1, o.CarrierName, o.FlightNumber,
			o.DepartureDate, o.DepartureTime, o.ArrivalDate, o.ArrivalTime,
			o.StopsLabel, o.CabinClass, o.Price)
	}
	b.WriteString("Reply with the option number to select a flight.")
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
