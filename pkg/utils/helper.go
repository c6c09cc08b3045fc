package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseSlotTime normalizes a wall-clock slot time to "HH:MM".
func ParseSlotTime(value string) (string, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", fmt.Errorf("invalid slot time %q: %w", value, err)
	}
	return t.Format("15:04"), nil
}

// ParseSlotDate parses a booking date in "YYYY-MM-DD" form, truncated to
// midnight UTC so date comparisons are exact.
func ParseSlotDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot date %q: %w", value, err)
	}
	return d, nil
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
