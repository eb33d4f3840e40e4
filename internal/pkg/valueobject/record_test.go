package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	rec, ok := NewRecord(map[string]any{
		"id":            json.Number("12"),
		"first_name":    "Jane",
		"department_id": "3",
		"is_active":     true,
		"hire_date":     "2024-01-15T00:00:00.000Z",
		"salary":        1234.5,
	})
	require.True(t, ok)

	assert.True(t, rec.Has("firstName"))
	assert.False(t, rec.Has("first_name"))
	assert.Equal(t, int64(12), rec.GetInt64("id"))
	assert.Equal(t, "12", rec.GetString("id"))
	assert.Equal(t, "Jane", rec.GetString("firstName"))
	assert.Equal(t, int64(3), rec.GetInt64("departmentId"))
	assert.True(t, rec.GetBool("isActive"))
	assert.Equal(t, "1234.5", rec.GetString("salary"))
	assert.Equal(t, int64(0), rec.GetInt64("salary"))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), rec.GetTime("hireDate").UTC())
	assert.True(t, rec.GetTime("missing").IsZero())
	assert.Empty(t, rec.GetString("missing"))

	_, ok = NewRecord([]any{})
	assert.False(t, ok)
}

func TestNewRecords(t *testing.T) {
	recs, ok := NewRecords([]any{
		map[string]any{"name": "B"},
		"skipped",
		map[string]any{"name": "A"},
	})
	require.True(t, ok)
	require.Len(t, recs, 2)
	assert.Equal(t, "B", recs[0].GetString("name"))

	_, ok = NewRecords(map[string]any{})
	assert.False(t, ok)
}

func TestRecord_GetBool(t *testing.T) {
	rec := Record{"a": "true", "b": "nope", "c": 1, "d": false}
	assert.True(t, rec.GetBool("a"))
	assert.False(t, rec.GetBool("b"))
	assert.False(t, rec.GetBool("c"))
	assert.False(t, rec.GetBool("d"))
}
