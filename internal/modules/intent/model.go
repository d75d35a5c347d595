// README: Closed set of dialogue intents and label parsing.
package intent

import "strings"

type Intent string

const (
	Greeting                 Intent = "greeting"
	FlightBooking            Intent = "flight_booking"
	ProvidingDate            Intent = "providing_date"
	ProvidingLocation        Intent = "providing_location"
	PassengerDetails         Intent = "passenger_details"
	FlightQuery              Intent = "flight_query"
	FlightSelection          Intent = "flight_selection"
	ConfirmBooking           Intent = "confirm_booking"
	Other                    Intent = "other"
	FileUpload               Intent = "file_upload"
	PassengerInfoManualEntry Intent = "passenger_info_manual_entry"
)

var all = []Intent{
	Greeting, FlightBooking, ProvidingDate, ProvidingLocation, PassengerDetails,
	FlightQuery, FlightSelection, ConfirmBooking, Other, FileUpload, PassengerInfoManualEntry,
}

// aliases are labels the classifier has been seen to emit for an existing intent.
var aliases = map[string]Intent{
	"booking_confirmation": ConfirmBooking,
}

// All returns every intent. The slice is a copy.
func All() []Intent {
	out := make([]Intent, len(all))
	copy(out, all)
	return out
}

// Parse maps an oracle label onto the closed set.
func Parse(label string) (Intent, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, in := range all {
		if string(in) == label {
			return in, true
		}
	}
	if in, ok := aliases[label]; ok {
		return in, true
	}
	return Other, false
}

func (i Intent) String() string { return string(i) }

// CollectsCriteria reports whether the intent feeds the trip criteria filler.
func (i Intent) CollectsCriteria() bool {
	return i == FlightBooking || i == ProvidingDate || i == ProvidingLocation
}
