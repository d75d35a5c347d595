package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrNoMatch means Google knew the place but none of its names are in our directory.
var ErrNoMatch = errors.New("no known name in geocoding results")

// componentOrder is the preference when a result names several places.
var componentOrder = []string{
	"locality",
	"airport",
	"administrative_area_level_1",
	"administrative_area_level_2",
	"country",
}

// GeocodeResolver corrects misspelt or local place names ("Chattogram",
// "Dacca") by asking Google which city or airport they refer to.
type GeocodeResolver struct {
	client *maps.Client
}

// NewGeocodeResolver creates a resolver with the given API Key.
func NewGeocodeResolver(apiKey string) (*GeocodeResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeResolver{client: client}, nil
}

// CorrectName returns the entry of known that Google's answer for candidate
// names. Geocoding is tried first, then an airport text search.
func (g *GeocodeResolver) CorrectName(ctx context.Context, candidate string, known []string) (string, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  candidate,
		Language: "en",
	})
	if err != nil {
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	if name, ok := matchComponents(results, known); ok {
		return name, nil
	}

	resp, err := g.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    "airport " + candidate,
		Type:     maps.PlaceTypeAirport,
		Language: "en",
	})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}
	if name, ok := matchPlaces(resp.Results, known); ok {
		return name, nil
	}
	return "", ErrNoMatch
}

func matchComponents(results []maps.GeocodingResult, known []string) (string, bool) {
	index := knownIndex(known)
	for _, res := range results {
		for _, want := range componentOrder {
			for _, c := range res.AddressComponents {
				if !hasType(c.Types, want) {
					continue
				}
				if name, ok := index[strings.ToLower(c.LongName)]; ok {
					return name, true
				}
				if name, ok := index[strings.ToLower(c.ShortName)]; ok {
					return name, true
				}
			}
		}
	}
	return "", false
}

func matchPlaces(results []maps.PlacesSearchResult, known []string) (string, bool) {
	index := knownIndex(known)
	for _, r := range results {
		if name, ok := index[strings.ToLower(r.Name)]; ok {
			return name, true
		}
	}
	return "", false
}

func knownIndex(known []string) map[string]string {
	m := make(map[string]string, len(known))
	for _, k := range known {
		m[strings.ToLower(k)] = k
	}
	return m
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
