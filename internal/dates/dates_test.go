package dates

import (
	"testing"
	"time"
)

func TestNormalizeDateCanonicalFastPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain date", input: "2024-06-10"},
		{name: "leap day", input: "2024-02-29"},
		{name: "start of year", input: "2025-01-01"},
		{name: "end of year", input: "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.input {
				t.Errorf("NormalizeDate(%q) = %q, want unchanged", tt.input, got)
			}
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []any{
		"2024-06-10",
		"2024-06-10T22:15:00.000Z",
		"13/02/2024",
		"25-Oct-2024",
		"Date(1718057700000)",
		"not a date at all",
		"",
		nil,
	}

	for _, input := range inputs {
		once := NormalizeDate(input)
		twice := NormalizeDate(once)
		if once != twice {
			t.Errorf("NormalizeDate not idempotent for %v: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeDatePivot(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			// 23:30 UTC is consistent with local midnight in UTC+1
			// having already rolled to the 5th.
			name:     "late UTC instant rolls forward",
			input:    "2024-03-04T23:30:00Z",
			expected: "2024-03-05",
		},
		{
			// 05:00 UTC is consistent with local midnight in UTC-5
			// still on the 4th.
			name:     "early UTC instant stays",
			input:    "2024-03-04T05:00:00Z",
			expected: "2024-03-04",
		},
		{
			name:     "exact UTC midnight stays",
			input:    "2024-06-10T00:00:00Z",
			expected: "2024-06-10",
		},
		{
			name:     "milliseconds variant",
			input:    "2024-06-10T22:15:00.000Z",
			expected: "2024-06-11",
		},
		{
			name:     "pivot crosses year boundary",
			input:    "2023-12-31T20:00:00Z",
			expected: "2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDateTimeObject(t *testing.T) {
	// A time.Time carries its own offset; the pivot must neutralize it.
	plusOne := time.FixedZone("CET", 3600)
	midnightCET := time.Date(2024, 3, 5, 0, 0, 0, 0, plusOne) // 2024-03-04T23:00Z

	if got := NormalizeDate(midnightCET); got != "2024-03-05" {
		t.Errorf("NormalizeDate(midnight CET) = %q, want 2024-03-05", got)
	}

	minusFive := time.FixedZone("EST", -5*3600)
	midnightEST := time.Date(2024, 3, 4, 0, 0, 0, 0, minusFive) // 2024-03-04T05:00Z

	if got := NormalizeDate(midnightEST); got != "2024-03-04" {
		t.Errorf("NormalizeDate(midnight EST) = %q, want 2024-03-04", got)
	}

	if got := NormalizeDate(time.Time{}); got != "" {
		t.Errorf("NormalizeDate(zero time) = %q, want empty", got)
	}

	var nilTime *time.Time
	if got := NormalizeDate(nilTime); got != "" {
		t.Errorf("NormalizeDate(nil *time.Time) = %q, want empty", got)
	}
}

func TestNormalizeDateEpochMarker(t *testing.T) {
	// 2024-06-10T22:15:00Z in millis; pivot lands on the 11th.
	const millis = "1718057700000"

	tests := []struct {
		name  string
		input any
	}{
		{name: "bare marker", input: "Date(" + millis + ")"},
		{name: "slash-wrapped marker", input: "/Date(" + millis + ")/"},
		{name: "raw float millis", input: float64(1718057700000)},
		{name: "raw int64 millis", input: int64(1718057700000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != "2024-06-11" {
				t.Errorf("NormalizeDate(%v) = %q, want 2024-06-11", tt.input, got)
			}
		})
	}
}

func TestNormalizeDateLocaleAmbiguous(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "day unambiguous in first group",
			input:    "13/02/2024",
			expected: "2024-02-13",
		},
		{
			name:     "day unambiguous in second group",
			input:    "02/13/2024",
			expected: "2024-02-13",
		},
		{
			name:     "both ambiguous assumes day first",
			input:    "02/03/2024",
			expected: "2024-03-02",
		},
		{
			name:     "dash separators",
			input:    "9-4-2024",
			expected: "2024-04-09",
		},
		{
			name:     "single digit groups zero padded",
			input:    "5/6/2024",
			expected: "2024-06-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	// Both groups above 12 cannot form a date.
	if got := NormalizeDate("13/13/2024"); got != "" {
		t.Errorf("NormalizeDate(13/13/2024) = %q, want empty", got)
	}
}

func TestNormalizeDateMonthAbbrev(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "25-Oct-2024", expected: "2024-10-25"},
		{input: "1-Jan-2025", expected: "2025-01-01"},
		{input: "09 Feb 2024", expected: "2024-02-09"},
		{input: "30-dec-2023", expected: "2023-12-30"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.input); got != tt.expected {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeDateUnrecoverable(t *testing.T) {
	if got := NormalizeDate(nil); got != "" {
		t.Errorf("NormalizeDate(nil) = %q, want empty", got)
	}
	if got := NormalizeDate(""); got != "" {
		t.Errorf("NormalizeDate(\"\") = %q, want empty", got)
	}
	if got := NormalizeDate("   "); got != "" {
		t.Errorf("NormalizeDate(whitespace) = %q, want empty", got)
	}
	if got := NormalizeDate("null"); got != "" {
		t.Errorf("NormalizeDate(null literal) = %q, want empty", got)
	}

	// Garbage degrades to a deterministic truncated best-effort value.
	got := NormalizeDate("definitely not a date")
	if got != "definitely" {
		t.Errorf("NormalizeDate(garbage) = %q, want first 10 chars", got)
	}
	if got := NormalizeDate("junk"); got != "junk" {
		t.Errorf("NormalizeDate(short garbage) = %q, want input unchanged", got)
	}
}

func TestSnapToMonday(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "monday maps to itself",
			input:    "2024-06-10",
			expected: "2024-06-10",
		},
		{
			name:     "midweek snaps back",
			input:    "2024-06-13",
			expected: "2024-06-10",
		},
		{
			name:     "sunday belongs to preceding monday",
			input:    "2024-06-16",
			expected: "2024-06-10",
		},
		{
			name:     "rollover into prior month",
			input:    "2024-05-01", // Wednesday
			expected: "2024-04-29",
		},
		{
			name:     "sunday on last day of month",
			input:    "2024-03-31",
			expected: "2024-03-25",
		},
		{
			name:     "rollover into prior year",
			input:    "2025-01-02", // Thursday
			expected: "2024-12-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapToMonday(tt.input)
			if got != tt.expected {
				t.Errorf("SnapToMonday(%q) = %q, want %q", tt.input, got, tt.expected)
			}

			parsed, err := time.Parse(CanonicalLayout, got)
			if err != nil {
				t.Fatalf("SnapToMonday(%q) returned unparseable %q", tt.input, got)
			}
			if parsed.Weekday() != time.Monday {
				t.Errorf("SnapToMonday(%q) = %q lands on %s, want Monday", tt.input, got, parsed.Weekday())
			}
		})
	}
}

func TestSnapToMondayIdempotent(t *testing.T) {
	inputs := []string{"2024-06-10", "2024-06-14", "2024-03-31", "2025-01-02"}

	for _, input := range inputs {
		once := SnapToMonday(input)
		if twice := SnapToMonday(once); twice != once {
			t.Errorf("SnapToMonday not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSnapToMondayDefensiveNormalization(t *testing.T) {
	// Not-yet-canonical input is normalized before bucketing.
	if got := SnapToMonday("2024-06-13T22:30:00Z"); got != "2024-06-10" {
		t.Errorf("SnapToMonday(time-bearing) = %q, want 2024-06-10", got)
	}
	if got := SnapToMonday("13/06/2024"); got != "2024-06-10" {
		t.Errorf("SnapToMonday(D/M/Y) = %q, want 2024-06-10", got)
	}
}

func TestSnapToMondayUnrecoverablePassthrough(t *testing.T) {
	inputs := []string{"", "not a date", "pending"}

	for _, input := range inputs {
		if got := SnapToMonday(input); got != input {
			t.Errorf("SnapToMonday(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestEndToEndMixedShapes(t *testing.T) {
	// The pivot applies only to time-bearing inputs: a record serialized
	// through UTC recovers the day the user meant, a canonical record is
	// left alone.
	if got := NormalizeDate("2024-06-10T22:15:00.000Z"); got != "2024-06-11" {
		t.Errorf("time-bearing record = %q, want 2024-06-11", got)
	}
	if got := NormalizeDate("2024-06-10"); got != "2024-06-10" {
		t.Errorf("canonical record = %q, want 2024-06-10", got)
	}
}
