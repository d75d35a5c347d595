// README: Dialogue reply shape, canned texts, and the static per-intent suggestions.
package dialogue

import "flightdesk/internal/modules/intent"

type Reply struct {
	Response    string        `json:"response"`
	Suggestions []string      `json:"next_steps"`
	Intent      intent.Intent `json:"intent"`
}

const (
	GreetingText       = "Hello! How can I assist you today?"
	FileUploadText     = "Please upload files in jpeg or jpg format."
	ManualEntryText    = "Please enter your information manually. for example, (My name is Adam Foster adam@gmail.com 01856684559)"
	FallbackText       = "I'm not sure how to handle that."
	BusyText           = "I'm still working on your previous message. Please try again in a moment."
	NewBookingText     = "Okay, let's start a new booking. Where would you like to fly from?"
	persistenceNote    = "(I couldn't save this step, so you may need to repeat it.)"
	emptyUtteranceText = "I didn't catch that. Could you say it again?"
)

var suggestions = map[intent.Intent][]string{
	intent.Greeting:         {"Book a flight"},
	intent.PassengerDetails: {"Proceed to booking", "Confirm Booking"},
	intent.FlightQuery:      {"View available flights", "Check baggage allowance", "See airline policies"},
	intent.FlightSelection:  {"Upload passport/NID", "Enter Information Manually"},
	intent.Other:            {"Ask about loyalty programs", "Check refund policy", "Speak to a support agent"},
}

// allCollectedSuggestions replace the passenger list once nobody is left to collect.
var allCollectedSuggestions = []string{"Select flight", "Confirm booking", "View itinerary"}

// Suggestions returns the static next steps for in; never nil.
func Suggestions(in intent.Intent) []string {
	s, ok := suggestions[in]
	if !ok {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
