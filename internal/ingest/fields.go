package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"teampulse/internal/dates"
)

// The remote store returns rows as loosely-typed JSON objects whose field
// names may appear in camelCase or PascalCase depending on which client
// wrote them. Each logical field has an ordered alias list probed once at
// ingestion; the first alias present wins.

// Row is one raw spreadsheet row as decoded from the endpoint.
type Row = map[string]any

func lookup(row Row, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// StringField resolves a text field through its alias list.
func StringField(row Row, aliases ...string) string {
	v, ok := lookup(row, aliases)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// Numeric cells for text columns happen when someone types a
		// bare number into the sheet.
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// IntField resolves a numeric field through its alias list. Unparseable
// values degrade to 0.
func IntField(row Row, aliases ...string) int {
	v, ok := lookup(row, aliases)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// BoolField resolves a boolean field through its alias list. The sheet
// stores booleans as TRUE/FALSE strings as often as real booleans.
func BoolField(row Row, aliases ...string) bool {
	v, ok := lookup(row, aliases)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1", "x", "done":
			return true
		}
		return false
	case float64:
		return b != 0
	default:
		return false
	}
}

// DateField resolves a date-bearing field and normalizes it to canonical
// form. The raw value keeps whatever shape the store handed back.
func DateField(row Row, aliases ...string) string {
	v, ok := lookup(row, aliases)
	if !ok {
		return ""
	}
	return dates.NormalizeDate(v)
}

// WeekField resolves a week-anchor field: normalized, then snapped to the
// Monday starting its week.
func WeekField(row Row, aliases ...string) string {
	v, ok := lookup(row, aliases)
	if !ok {
		return ""
	}
	normalized := dates.NormalizeDate(v)
	if normalized == "" {
		return ""
	}
	return dates.SnapToMonday(normalized)
}
