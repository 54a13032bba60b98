package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Number is a numeric input field. It accepts a JSON number or a numeric
// string and keeps the raw text when parsing fails so the validator can
// report it.
type Number struct {
	Value float64
	Raw   string
	Set   bool
	Valid bool
}

// NewNumber returns a present, valid Number.
func NewNumber(v float64) Number {
	return Number{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64), Set: true, Valid: true}
}

// UnmarshalJSON never fails; malformed input is left for validation.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = Number{}

		return nil
	}

	raw := string(trimmed)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			raw = strings.TrimSpace(s)
		}
	}

	*n = Number{Raw: raw, Set: true}
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		n.Value = v
		n.Valid = true
	}

	return nil
}

// MarshalJSON writes the parsed value, or null when absent.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.Value)
}

const dateLayout = "2006-01-02"

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates resolve to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, _, err := parseDate(s)

	return t, err
}

// ParseDateBound parses an inclusive upper bound: a calendar date covers the
// whole day, a timestamp is used as is.
func ParseDateBound(s string) (time.Time, error) {
	t, dateOnly, err := parseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false, errors.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
	}

	return t.UTC(), true, nil
}
