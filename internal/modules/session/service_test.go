package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightdesk/internal/types"
)

type failingStore struct {
	*MemoryStore
	saveErr error
}

func (f *failingStore) Save(ctx context.Context, s *Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(ctx, s)
}

func TestUpdateCreatesThenIncrements(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)
	id := types.NewSessionID()

	s, err := svc.Update(ctx, id, func(s *Session) error {
		s.Criteria = &TripCriteria{Origin: "DAC"}
		return nil
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if s.Version != 1 {
		t.Fatalf("version = %d, want 1", s.Version)
	}

	s, err = svc.Update(ctx, id, func(s *Session) error {
		s.Criteria.Destination = "BKK"
		return nil
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if s.Version != 2 || s.Criteria.Origin != "DAC" || s.Criteria.Destination != "BKK" {
		t.Fatalf("unexpected session %+v v%d", s.Criteria, s.Version)
	}
}

func TestUpdateReturnsMutatedSessionOnPersistenceFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), saveErr: errors.New("redis down")}
	svc := NewService(store, nil, nil)

	s, err := svc.Update(context.Background(), types.NewSessionID(), func(s *Session) error {
		s.Criteria = &TripCriteria{Origin: "DAC"}
		return nil
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if s == nil || s.Criteria == nil || s.Criteria.Origin != "DAC" {
		t.Fatalf("mutated session should be returned, got %+v", s)
	}
}

func TestUpdateConcurrentWritersSerializeWithLocker(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)
	locker := NewMemoryLocker()
	id := types.NewSessionID()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, id)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()
			if _, err := svc.Update(ctx, id, func(s *Session) error {
				s.Passengers = append(s.Passengers, PassengerRecord{})
				return nil
			}); err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	s, err := svc.Load(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Passengers) != 10 || s.Version != 10 {
		t.Fatalf("lost updates: passengers=%d version=%d", len(s.Passengers), s.Version)
	}
}

func TestResetDropsAllSurfaces(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)
	id := types.NewSessionID()
	if _, err := svc.Update(ctx, id, func(s *Session) error {
		s.SelectedFlight = &FlightOption{OfferID: "o1"}
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Reset(ctx, id); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session should be gone, got err=%v", err)
	}
}

func TestMemoryLockerTimesOut(t *testing.T) {
	locker := NewMemoryLocker()
	id := types.NewSessionID()
	unlock, err := locker.Lock(context.Background(), id)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, id); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
}

func (l *MemoryLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func TestMemoryLockerDropsIdleSlots(t *testing.T) {
	locker := NewMemoryLocker()
	for i := 0; i < 5; i++ {
		unlock, err := locker.Lock(context.Background(), types.NewSessionID())
		if err != nil {
			t.Fatalf("lock: %v", err)
		}
		unlock()
		unlock()
	}
	if n := locker.held(); n != 0 {
		t.Fatalf("expected no slots after unlock, got %d", n)
	}

	id := types.NewSessionID()
	unlock, _ := locker.Lock(context.Background(), id)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, id); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	if n := locker.held(); n != 1 {
		t.Fatalf("holder's slot must survive a timed-out waiter, got %d", n)
	}
	unlock()
	if n := locker.held(); n != 0 {
		t.Fatalf("expected slot released, got %d", n)
	}
}
