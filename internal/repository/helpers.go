package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// dateLayout stores date-only fields (due dates, birth dates).
const dateLayout = "2006-01-02"

// timeLayout stores timestamps with fixed-width fractional seconds so
// that lexicographic ORDER BY matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// parseTime parses a stored timestamp, returning the zero time on failure.
func parseTime(s, layout string) time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// tagsToJSON encodes a tag list for storage. Nil encodes as "[]".
func tagsToJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// tagsFromJSON decodes a stored tag list. Malformed values decode as no tags.
func tagsFromJSON(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}
