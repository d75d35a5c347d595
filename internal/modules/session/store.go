// README: Session store contract and the per-surface document codec shared by backends.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"flightdesk/internal/types"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrConflict    = errors.New("session version conflict")
	ErrPersistence = errors.New("session state not persisted")
)

// Surface names one wholesale-overwritten document inside a session.
type Surface string

const (
	SurfaceCriteria   Surface = "criteria"
	SurfacePassengers Surface = "passengers"
	SurfaceSelected   Surface = "selected_flight"
	SurfaceResults    Surface = "last_results"
)

const (
	fieldVersion   = "version"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// Store persists sessions keyed by id. Save is a compare-and-set on Version:
// Version 0 means "create", any other value must match what is stored. On
// success the stored version is s.Version+1 and s is updated in place.
type Store interface {
	Get(ctx context.Context, id types.SessionID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id types.SessionID) error
}

// encodeDocuments flattens a session into the field/value pairs a backend stores.
func encodeDocuments(s *Session) (map[string]string, error) {
	out := make(map[string]string, 7)
	docs := []struct {
		surface Surface
		value   any
	}{
		{SurfaceCriteria, s.Criteria},
		{SurfacePassengers, nonNilPassengers(s.Passengers)},
		{SurfaceSelected, s.SelectedFlight},
		{SurfaceResults, nonNilResults(s.LastResults)},
	}
	for _, d := range docs {
		b, err := json.Marshal(d.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", d.surface, err)
		}
		out[string(d.surface)] = string(b)
	}
	out[fieldVersion] = strconv.FormatInt(s.Version, 10)
	out[fieldCreatedAt] = s.CreatedAt.UTC().Format(time.RFC3339Nano)
	out[fieldUpdatedAt] = s.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out, nil
}

func decodeDocuments(id types.SessionID, fields map[string]string) (*Session, error) {
	s := New(id)
	if v, ok := fields[fieldVersion]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode version: %w", err)
		}
		s.Version = n
	}
	if v := fields[string(SurfaceCriteria)]; v != "" {
		if err := json.Unmarshal([]byte(v), &s.Criteria); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SurfaceCriteria, err)
		}
	}
	if v := fields[string(SurfacePassengers)]; v != "" {
		if err := json.Unmarshal([]byte(v), &s.Passengers); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SurfacePassengers, err)
		}
	}
	if v := fields[string(SurfaceSelected)]; v != "" {
		if err := json.Unmarshal([]byte(v), &s.SelectedFlight); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SurfaceSelected, err)
		}
	}
	if v := fields[string(SurfaceResults)]; v != "" {
		if err := json.Unmarshal([]byte(v), &s.LastResults); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SurfaceResults, err)
		}
	}
	s.CreatedAt = parseTime(fields[fieldCreatedAt])
	s.UpdatedAt = parseTime(fields[fieldUpdatedAt])
	return s, nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nonNilPassengers(p []PassengerRecord) []PassengerRecord {
	if p == nil {
		return []PassengerRecord{}
	}
	return p
}

func nonNilResults(r []FlightOption) []FlightOption {
	if r == nil {
		return []FlightOption{}
	}
	return r
}

func formatVersion(v int64) string {
	return strconv.FormatInt(v, 10)
}
