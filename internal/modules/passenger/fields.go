// README: Passenger required-field sets, completeness, merge, and next-target scan.
package passenger

import (
	"strings"

	"flightdesk/internal/modules/session"
)

type field struct {
	name  string
	label string
	get   func(*session.PassengerRecord) *string
}

var domesticFields = []field{
	{"title", "title", func(r *session.PassengerRecord) *string { return &r.Title }},
	{"gender", "gender", func(r *session.PassengerRecord) *string { return &r.Gender }},
	{"first_name", "first name", func(r *session.PassengerRecord) *string { return &r.FirstName }},
	{"last_name", "last name", func(r *session.PassengerRecord) *string { return &r.LastName }},
	{"email", "email", func(r *session.PassengerRecord) *string { return &r.Email }},
	{"phone", "phone number", func(r *session.PassengerRecord) *string { return &r.Phone }},
	{"dob", "date of birth", func(r *session.PassengerRecord) *string { return &r.DOB }},
}

var documentFields = []field{
	{"passport_number", "passport number", func(r *session.PassengerRecord) *string { return &r.PassportNumber }},
	{"nationality", "nationality", func(r *session.PassengerRecord) *string { return &r.Nationality }},
	{"date_of_issue", "passport issue date", func(r *session.PassengerRecord) *string { return &r.DateOfIssue }},
	{"date_of_expiry", "passport expiry date", func(r *session.PassengerRecord) *string { return &r.DateOfExpiry }},
}

func fieldsFor(ft session.FlightType) []field {
	if ft == session.International {
		out := make([]field, 0, len(domesticFields)+len(documentFields))
		out = append(out, domesticFields...)
		return append(out, documentFields...)
	}
	return domesticFields
}

// allFields covers every record field regardless of flight type; merge uses it
// so passport data given early survives a later switch to international.
var allFields = fieldsFor(session.International)

// RequiredFields lists field names in prompt order.
func RequiredFields(ft session.FlightType) []string {
	fs := fieldsFor(ft)
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.name
	}
	return out
}

// Missing returns the required field names rec lacks under ft.
func Missing(rec session.PassengerRecord, ft session.FlightType) []string {
	var out []string
	for _, f := range fieldsFor(ft) {
		if strings.TrimSpace(*f.get(&rec)) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

func Complete(rec session.PassengerRecord, ft session.FlightType) bool {
	return len(Missing(rec, ft)) == 0
}

// Merge overlays the non-empty fields of upd onto rec.
func Merge(rec, upd session.PassengerRecord) session.PassengerRecord {
	for _, f := range allFields {
		if v := strings.TrimSpace(*f.get(&upd)); v != "" {
			*f.get(&rec) = v
		}
	}
	return rec
}

// NextTarget picks the record this turn's data belongs to: the first
// incomplete one, else a new record while fewer than total exist. done means
// every expected record is complete.
func NextTarget(records []session.PassengerRecord, ft session.FlightType, total int) (index int, create bool, done bool) {
	for i, r := range records {
		if !Complete(r, ft) {
			return i, false, false
		}
	}
	if len(records) < total {
		return len(records), true, false
	}
	return -1, false, true
}

// Labels turns field names into the words used in prompts.
func Labels(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, labelOf(n))
	}
	return out
}

func labelOf(name string) string {
	for _, f := range allFields {
		if f.name == name {
			return f.label
		}
	}
	return strings.ReplaceAll(name, "_", " ")
}
