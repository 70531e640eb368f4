package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat means the raw value matched none of the accepted
// layouts. Callers decide whether that fails the entry or just the field.
var ErrInvalidDateFormat = errors.New("invalid date format")

// dateLayouts are tried in order; the first successful parse wins. A
// year-month value defaults the day to the 1st, a bare year defaults to
// January 1st.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// NormalizeDate parses a heterogeneous date string into a calendar date.
// It is pure: no wall clock, no shared state.
func NormalizeDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateFormat)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
}
