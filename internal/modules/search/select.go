// README: Picking one of the last search results from the user's words.
package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"flightdesk/internal/ai"
	"flightdesk/internal/modules/session"
)

// ordinalWords maps spoken positions to 1-based indexes.
var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5,
}

// cardinalWords only count as positions right after an option marker or alone.
var cardinalWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var optionMarker = regexp.MustCompile(`(?:\boption|\bnumber|\bno\.|#)\s*([0-9]+|[a-z]+)\b`)

// matchSelection finds the option the utterance names, most specific handle first.
func matchSelection(utterance string, opts []session.FlightOption) (int, bool) {
	tokens := tokenize(utterance)
	has := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		has[t] = true
	}

	for i, o := range opts {
		if known(o.TrackingID) && known(o.OfferID) && has[strings.ToLower(o.TrackingID)] && has[strings.ToLower(o.OfferID)] {
			return i, true
		}
	}
	for i, o := range opts {
		if known(o.OfferID) && has[strings.ToLower(o.OfferID)] {
			return i, true
		}
	}
	for i, o := range opts {
		if !known(o.FlightNumber) {
			continue
		}
		num := strings.ToLower(o.FlightNumber)
		if has[num] && !isNumber(num) || has[strings.ToLower(o.CarrierCode)+num] {
			return i, true
		}
	}
	if n, ok := optionPosition(utterance, tokens); ok && n <= len(opts) {
		return n - 1, true
	}
	return -1, false
}

// optionPosition reads an explicit 1-based position: an ordinal word, a
// number after "option"/"number"/"#", or a message that is only a number.
// Other numbers ("leaves at 9", "2 adults") are left to the oracle.
func optionPosition(utterance string, tokens []string) (int, bool) {
	for _, t := range tokens {
		if n, ok := ordinalWords[t]; ok {
			return n, true
		}
	}
	if m := optionMarker.FindStringSubmatch(strings.ToLower(utterance)); m != nil {
		if n, ok := parseCount(m[1]); ok {
			return n, true
		}
	}
	if len(tokens) == 1 {
		return parseCount(tokens[0])
	}
	return 0, false
}

// matchHint applies what the extraction oracle understood.
func matchHint(h ai.SelectionHint, opts []session.FlightOption) (int, bool) {
	if h.OfferID != "" {
		for i, o := range opts {
			if strings.EqualFold(o.OfferID, h.OfferID) {
				return i, true
			}
		}
	}
	if h.FlightNumber != "" {
		want := strings.ToLower(strings.ReplaceAll(h.FlightNumber, " ", ""))
		for i, o := range opts {
			if strings.ToLower(o.FlightNumber) == want || strings.ToLower(o.CarrierCode+o.FlightNumber) == want {
				return i, true
			}
		}
	}
	if h.Index >= 1 && h.Index <= len(opts) {
		return h.Index - 1, true
	}
	return -1, false
}

func parseCount(word string) (int, bool) {
	if n, ok := cardinalWords[word]; ok {
		return n, true
	}
	n, err := strconv.Atoi(word)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
	})
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func known(v string) bool {
	return v != "" && v != session.NotAvailable
}
