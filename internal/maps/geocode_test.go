package maps

import (
	"testing"

	"googlemaps.github.io/maps"
)

func TestMatchComponentsPrefersLocality(t *testing.T) {
	known := []string{"Bangladesh", "Chittagong", "Dhaka"}
	results := []maps.GeocodingResult{{
		AddressComponents: []maps.AddressComponent{
			{LongName: "Bangladesh", ShortName: "BD", Types: []string{"country", "political"}},
			{LongName: "Chittagong", ShortName: "Chittagong", Types: []string{"locality", "political"}},
		},
	}}
	got, ok := matchComponents(results, known)
	if !ok || got != "Chittagong" {
		t.Fatalf("expected Chittagong, got %q ok=%v", got, ok)
	}
}

func TestMatchComponentsNoKnownName(t *testing.T) {
	results := []maps.GeocodingResult{{
		AddressComponents: []maps.AddressComponent{{LongName: "Atlantis", Types: []string{"locality"}}},
	}}
	if _, ok := matchComponents(results, []string{"Dhaka"}); ok {
		t.Fatalf("unexpected match")
	}
}

func TestMatchPlacesCaseInsensitive(t *testing.T) {
	known := []string{"Shah Amanat International Airport"}
	got, ok := matchPlaces([]maps.PlacesSearchResult{{Name: "shah amanat international airport"}}, known)
	if !ok || got != known[0] {
		t.Fatalf("expected known airport, got %q", got)
	}
}
