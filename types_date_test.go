package collection

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
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"2024-02-29", NewDate(2024, time.February, 29), false},
		{"invalid-date", Date{}, true},
		{"2025-13-01", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)

	if got := a.Compare(b); got != -1 {
		t.Errorf("Compare() = %d, want -1", got)
	}
	if got := b.Compare(a); got != 1 {
		t.Errorf("Compare() = %d, want 1", got)
	}
	if got := a.Compare(NewDate(2024, time.March, 1)); got != 0 {
		t.Errorf("Compare() = %d, want 0", got)
	}
}

func TestDate_Add_Normalizes(t *testing.T) {
	d := NewDate(2024, time.January, 31).Add(1)
	if want := NewDate(2024, time.February, 1); d != want {
		t.Errorf("Add(1) = %v, want %v", d, want)
	}
	d = NewDate(2024, time.March, 1).Add(-1)
	if want := NewDate(2024, time.February, 29); d != want {
		t.Errorf("Add(-1) = %v, want %v", d, want)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 7)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `"2025-06-07"` {
		t.Errorf("Marshal() = %s, want %q", data, `"2025-06-07"`)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(NewDate(2024, time.May, 3), NewDate(2024, time.May, 1)) // swapped on purpose

	if !r.Contains(NewDate(2024, time.May, 1)) || !r.Contains(NewDate(2024, time.May, 3)) {
		t.Errorf("Contains() should include both bounds of %v", r)
	}
	if r.Contains(NewDate(2024, time.May, 4)) {
		t.Errorf("Contains() should exclude dates after %v", r)
	}

	var days []Date
	for d := range r.Days() {
		days = append(days, d)
	}
	if len(days) != 3 {
		t.Fatalf("Days() yielded %d dates, want 3", len(days))
	}
	if days[0] != NewDate(2024, time.May, 1) || days[2] != NewDate(2024, time.May, 3) {
		t.Errorf("Days() = %v, want May 1..3", days)
	}
}
