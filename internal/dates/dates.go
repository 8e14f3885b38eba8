package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the only date format the rest of the application
// operates on. Every date-bearing field on a record is either a string in
// this layout or empty.
const CanonicalLayout = "2006-01-02"

// The sheet endpoint stores a date as midnight in the sheet owner's locale
// but serializes it as an absolute UTC instant. Adding 12 hours before
// reading the UTC calendar date maps local midnight from any offset in
// -12:00..+12:00 into the middle of the intended day, so the exact offset
// no longer matters.
const pivot = 12 * time.Hour

var (
	canonicalRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericDMYRe  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	monthAbbrevRe = regexp.MustCompile(`^(\d{1,2})[-/ ]([A-Za-z]{3})[-/ ](\d{4})$`)
	// Serialized-epoch marker emitted by the sheet backend, e.g.
	// "Date(1718057700000)" or "/Date(1718057700000)/".
	epochMarkerRe = regexp.MustCompile(`Date\((\d+)\)`)
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Layouts tried by the fallback path, most specific first. All of them
// carry a time component, so a successful parse goes through the pivot.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
}

// NormalizeDate converts an arbitrary date representation coming out of
// the remote store into a canonical YYYY-MM-DD string. Unrecoverable input
// degrades to "" (or a truncated best-effort string); it never panics and
// never returns a value with a time-of-day component.
//
// Already-canonical strings are returned unchanged: once a date is
// canonical it must never be re-derived through timezone-sensitive
// arithmetic.
func NormalizeDate(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return pivotToDay(v)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return pivotToDay(*v)
	case string:
		return normalizeString(v)
	case float64:
		// JSON numbers arrive as float64; the sheet emits epoch millis.
		if v == 0 {
			return ""
		}
		return pivotToDay(time.UnixMilli(int64(v)))
	case int64:
		if v == 0 {
			return ""
		}
		return pivotToDay(time.UnixMilli(v))
	case int:
		if v == 0 {
			return ""
		}
		return pivotToDay(time.UnixMilli(int64(v)))
	default:
		return normalizeString(fmt.Sprint(input))
	}
}

func normalizeString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return ""
	}

	// Authoritative fast path: canonical input is returned as-is.
	if canonicalRe.MatchString(s) {
		return s
	}

	// Serialized-epoch marker wrapping a millisecond timestamp.
	if m := epochMarkerRe.FindStringSubmatch(s); m != nil {
		millis, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return pivotToDay(time.UnixMilli(millis))
		}
	}

	// Locale-ambiguous numeric D-M-Y / D/M/Y. No timezone conversion ever
	// happened to these, so they bypass the pivot entirely.
	if m := numericDMYRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		day, month, ok := disambiguate(a, b)
		if ok {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
		return ""
	}

	// Textual month abbreviation, e.g. "25-Oct-2024".
	if m := monthAbbrevRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthAbbrevs[strings.ToLower(m[2])]
		if ok && day >= 1 && day <= 31 {
			year, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		}
		return truncated(s)
	}

	// Time-bearing strings crossed a UTC serialization boundary and need
	// the pivot to recover the intended calendar day.
	if strings.ContainsAny(s, "T:") {
		if t, ok := parseAnyLayout(s); ok {
			return pivotToDay(t)
		}
		return truncated(s)
	}

	if t, ok := parseAnyLayout(s); ok {
		return pivotToDay(t)
	}
	return truncated(s)
}

// disambiguate decides which of two numeric groups is the day. A group
// above 12 cannot be a month; when both fit either slot, day-first wins.
func disambiguate(a, b int) (day, month int, ok bool) {
	switch {
	case a > 12 && b <= 12:
		day, month = a, b
	case b > 12 && a <= 12:
		day, month = b, a
	default:
		day, month = a, b
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, false
	}
	return day, month, true
}

func parseAnyLayout(s string) (time.Time, bool) {
	for _, layout := range fallbackLayouts {
		// Layouts without an explicit zone are anchored to UTC so the
		// runtime's configured timezone cannot leak into the result.
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// pivotToDay applies the fixed 12-hour pivot and reads the calendar date
// from the pivoted instant's UTC fields. Reading local fields here would
// reintroduce exactly the ambiguity the pivot removes.
func pivotToDay(t time.Time) string {
	return t.Add(pivot).UTC().Format(CanonicalLayout)
}

// truncated returns the first 10 characters of the trimmed input as a
// best-effort value for strings no rule recognized.
func truncated(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// SnapToMonday returns the canonical date of the Monday on or before
// dateStr, which is expected (but not required) to already be canonical.
// Input that cannot be recovered into a calendar date is returned
// unchanged so the caller keeps whatever partial week association existed.
func SnapToMonday(dateStr string) string {
	// Upstream canonicalization is not guaranteed by every caller.
	normalized := NormalizeDate(dateStr)
	if !canonicalRe.MatchString(normalized) {
		return dateStr
	}

	year, _ := strconv.Atoi(normalized[0:4])
	month, _ := strconv.Atoi(normalized[5:7])
	day, _ := strconv.Atoi(normalized[8:10])

	// UTC-anchored construction keeps the computed weekday stable no
	// matter what timezone the process runs in, and AddDate handles
	// month/year rollover when the subtraction crosses a boundary.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	weekday := int(t.Weekday()) // 0=Sunday .. 6=Saturday
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return monday.Format(CanonicalLayout)
}

// IsCanonical reports whether s is a strict YYYY-MM-DD string.
func IsCanonical(s string) bool {
	return canonicalRe.MatchString(s)
}
