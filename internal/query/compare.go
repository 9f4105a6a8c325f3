package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// fieldString coerces an arbitrary field value to its string form.
// Absent fields (nil) read as the empty string so filter relations
// degrade instead of erroring.
func fieldString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// foldForMatch normalizes a string for case-insensitive filter matching:
// NFC normalization first, then simple case folding.
func foldForMatch(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// numericValue reports whether v carries a numeric value and returns it
// as float64. Numeric strings do not count - a string field compares as
// a string.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		return 0, false
	}
}

// timeValue reports whether v is a chronological value: a time.Time, or
// a string in RFC 3339 form (the dateCreated wire format).
func timeValue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse(time.RFC3339, val)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// compareValues imposes a total order on field values: nil sorts lowest,
// numbers compare numerically, chronological values chronologically, and
// everything else (including mixed types) is coerced to string and
// compared lexicographically. The string coercion for mixed types is a
// documented simplification; it keeps the order total with no
// incomparable states.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if an, ok := numericValue(a); ok {
		if bn, ok := numericValue(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}

	if at, ok := timeValue(a); ok {
		if bt, ok := timeValue(b); ok {
			return at.Compare(bt)
		}
	}

	return strings.Compare(fieldString(a), fieldString(b))
}
