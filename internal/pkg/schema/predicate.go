package schema

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"
)

// Predicate reports whether a present value satisfies a field constraint.
//
// Values come from decoded form input: strings, booleans, numbers, or nil.
type Predicate func(value any) bool

var reDigits = regexp.MustCompile(`^\d+$`)

// browserLayouts are Date.toString and written-month forms that dateparse
// does not recognise.
var browserLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"Mon Jan 02 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// IsEmpty reports whether a value counts as missing: nil or the empty string.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// NonEmpty accepts any non-empty string.
func NonEmpty() Predicate {
	return func(value any) bool {
		s, ok := value.(string)
		return ok && s != ""
	}
}

// Pattern accepts strings fully matched by re.
func Pattern(re *regexp.Regexp) Predicate {
	return func(value any) bool {
		s, ok := value.(string)
		return ok && re.MatchString(s)
	}
}

// OneOf accepts strings equal to one of the permitted values.
func OneOf(values ...string) Predicate {
	permitted := append([]string(nil), values...)
	return func(value any) bool {
		s, ok := value.(string)
		return ok && lo.Contains(permitted, s)
	}
}

// Numeric accepts a string made only of digits or a finite number.
//
// Form fields arrive as strings while records hydrated from the backend carry
// numbers, so both representations are valid.
func Numeric() Predicate {
	return func(value any) bool {
		if s, ok := value.(string); ok {
			return reDigits.MatchString(s)
		}
		f, ok := toFloat(value)
		return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
}

// Date accepts strings from which a calendar date can be derived.
func Date() Predicate {
	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, ok = ParseDate(s)
		return ok
	}
}

// Boolean accepts booleans and their "true"/"false" string form.
func Boolean() Predicate {
	return func(value any) bool {
		switch v := value.(type) {
		case bool:
			return true
		case string:
			return v == "true" || v == "false"
		default:
			return false
		}
	}
}

// ParseDate derives a calendar date from s. Zone-less input is read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t, true
	}

	for _, layout := range browserLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
