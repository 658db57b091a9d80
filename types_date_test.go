package delfos

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Broker day-first format.
		{"15-01-2025", NewDate(2025, time.January, 15), false},
		{"01-07-2025", NewDate(2025, time.July, 1), false},
		// ISO fallback.
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"invalid-date", Date{}, true},
		{"32-01-2025", Date{}, true},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.input)
		if (err != nil) != tc.err {
			t.Errorf("ParseDate(%q) error = %v, want err=%v", tc.input, err, tc.err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	d1 := NewDate(2025, time.March, 31)
	d2 := NewDate(2025, time.April, 1)
	if !d1.Before(d2) || d2.Before(d1) {
		t.Errorf("Before() is inconsistent for %v and %v", d1, d2)
	}
	if d1.Compare(d2) != -1 || d2.Compare(d1) != 1 || d1.Compare(d1) != 0 {
		t.Errorf("Compare() is inconsistent for %v and %v", d1, d2)
	}
}

func TestDateAddNormalizes(t *testing.T) {
	d := NewDate(2025, time.January, 31).Add(1)
	if want := NewDate(2025, time.February, 1); d != want {
		t.Errorf("Add(1) = %v, want %v", d, want)
	}
}

func TestDateJSONRoundtrip(t *testing.T) {
	d := NewDate(2025, time.December, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(b) != `"05-12-2025"` {
		t.Errorf("Marshal() = %s, want \"05-12-2025\"", b)
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("roundtrip = %v, want %v", got, d)
	}
}
