package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2021-11-10", New(2021, time.November, 10), false},
		{"2021-11-10T14:24:11.849Z", New(2021, time.November, 10), false},
		{"2021-11-10T23:59:59+05:00", New(2021, time.November, 10), false},
		{"2021-11-10T14:24:11", New(2021, time.November, 10), false},
		{"2021-11-10 14:24:11", New(2021, time.November, 10), false},
		{"2021-11-10 14:24:11 UTC", New(2021, time.November, 10), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2025/07/01", New(2025, time.July, 1), false},
		{"07/01/2025", New(2025, time.July, 1), false},
		{"  2024-03-14  ", New(2024, time.March, 14), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
		{"2024-02-30", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("Parse(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.August, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-08-05"` {
		t.Errorf("Marshal = %s, want %q", b, `"2025-08-05"`)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
