package types

import "testing"

func TestSessionIDValid(t *testing.T) {
	cases := []struct {
		id   SessionID
		want bool
	}{
		{NewSessionID(), true},
		{"voice_user", true},
		{"abc-123", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{SessionID(make([]byte, 65)), false},
	}
	for _, tc := range cases {
		if got := tc.id.Valid(); got != tc.want {
			t.Errorf("SessionID(%q).Valid() = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32-char id, got %d", len(a))
	}
}
