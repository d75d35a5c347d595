package ai

type intentLabel struct {
	Intent string `json:"intent"`
}

type nameMatch struct {
	Name string `json:"name"`
}

// SelectionHint is what the model could tell about which listed flight the
// user means. Index is 1-based; zero means unknown.
type SelectionHint struct {
	Index        int    `json:"index"`
	FlightNumber string `json:"flight_number"`
	OfferID      string `json:"offer_id"`
}

// Empty reports whether the hint identifies nothing.
func (h SelectionHint) Empty() bool {
	return h.Index == 0 && h.FlightNumber == "" && h.OfferID == ""
}
