package ai

import (
	"fmt"
	"strings"
	"time"

	"flightdesk/internal/modules/session"
)

const assistantInstruction = `You are a friendly airline booking assistant. Answer briefly in plain text.
You can help users search flights, pick one, and provide passenger details for a booking.
If the question is unrelated to air travel, politely steer back to booking a flight.`

var intentLabels = []string{
	"greeting", "flight_booking", "providing_date", "providing_location",
	"passenger_details", "flight_query", "flight_selection", "confirm_booking",
	"other", "file_upload", "passenger_info_manual_entry",
}

func intentPrompt(utterance string) string {
	return fmt.Sprintf(`Classify the user's message for a flight booking assistant.
Allowed intents: %s.

Guidance:
- greeting: hello, hi, small talk openers.
- flight_booking: wants to book or search a flight, may mention cities, dates, travellers.
- providing_date: the message is mainly a travel or return date.
- providing_location: the message is mainly a city or airport.
- passenger_details: name, email, phone, date of birth, passport or similar traveller data.
- flight_query: asks to see available flights or about the current search.
- flight_selection: picks one of the listed flights (by number, position, or flight code).
- confirm_booking: asks to confirm or finalize the booking.
- file_upload: says they will upload or send a passport/NID image.
- passenger_info_manual_entry: says they will type their details manually.
- other: anything else.

Return JSON: {"intent": "<one allowed intent>"}

User Message: %s`, strings.Join(intentLabels, ", "), utterance)
}

func criteriaPrompt(utterance string, now time.Time) string {
	return fmt.Sprintf(`Extract flight search details from the user's message.
Today's date is %s. Resolve relative dates ("tomorrow", "next Friday") against it.
Use empty strings and null for anything the message does not state. Never guess.

Return JSON:
{
  "origin": "departure city or airport, as written",
  "destination": "arrival city or airport, as written",
  "date_of_travel": "YYYY-MM-DD",
  "return_date": "YYYY-MM-DD",
  "journey_type": "OneWay" | "RoundTrip" | "",
  "num_adults": integer or null,
  "num_children": integer or null,
  "flight_type": "domestic" | "international" | ""
}

User Message: %s`, now.Format("2006-01-02 (Monday)"), utterance)
}

func passengerPrompt(utterance string) string {
	return fmt.Sprintf(`Extract passenger details from the user's message.
Use empty strings for anything not stated. Dates use YYYY-MM-DD.
title is one of Mr, Mrs, Ms, Miss, Mstr. gender is Male or Female.

Return JSON:
{
  "title": "", "gender": "", "first_name": "", "last_name": "",
  "email": "", "phone": "", "dob": "",
  "passport_number": "", "nationality": "",
  "date_of_issue": "", "date_of_expiry": ""
}

User Message: %s`, utterance)
}

func selectionPrompt(utterance string, options []session.FlightOption) string {
	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "%d. %s %s %s->%s %s %s price %s offer %s\n",
			i+1, o.CarrierName, o.FlightNumber, o.OriginCode, o.DestinationCode,
			o.DepartureDate, o.DepartureTime, o.Price, o.OfferID)
	}
	return fmt.Sprintf(`The user was shown these flights:
%s
Which one does the user choose? Use 0 and empty strings when unclear.

Return JSON: {"index": 1-based integer, "flight_number": "", "offer_id": ""}

User Message: %s`, b.String(), utterance)
}

func correctionPrompt(candidate string, known []string) string {
	return fmt.Sprintf(`Match the following name to the closest valid option from the list below.
List: %s

Input: %s
Return JSON: {"name": "<exact entry from the list, or empty string if none is close>"}`,
		strings.Join(known, ", "), candidate)
}
