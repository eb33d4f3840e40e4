package valueobject

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/strcase"
)

// Record is a JSON object returned by the backend, with lowerCamelCase keys.
// @swaggertype object
type Record map[string]any

// NewRecord converts v to a Record, camel casing keys at every depth.
// It reports false when v is not a JSON object.
func NewRecord(v any) (Record, bool) {
	m, ok := strcase.CamelKeys(v).(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(m), true
}

// NewRecords converts a JSON array of objects. Entries that are not objects
// are skipped. It reports false when v is not an array.
func NewRecords(v any) ([]Record, bool) {
	list, ok := strcase.CamelKeys(v).([]any)
	if !ok {
		return nil, false
	}

	records := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records, true
}

// Has checks if a key exists.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// GetString returns strings as is and numbers or booleans in their JSON form.
// Returns "" if missing or another type.
func (r Record) GetString(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// GetInt64 returns whole numbers, including digit strings. Returns 0 otherwise.
func (r Record) GetInt64(key string) int64 {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// GetBool returns booleans and "true"/"false" strings. Returns false otherwise.
func (r Record) GetBool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

// GetTime parses a date or timestamp string. Returns the zero time otherwise.
func (r Record) GetTime(key string) time.Time {
	s, ok := r[key].(string)
	if !ok {
		return time.Time{}
	}
	t, ok := schema.ParseDate(s)
	if !ok {
		return time.Time{}
	}
	return t
}
