package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotTime(t *testing.T) {
	slot, err := ParseSlotTime("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", slot)

	// Single-digit hours normalize to two digits.
	slot, err = ParseSlotTime("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", slot)

	_, err = ParseSlotTime("25:00")
	assert.Error(t, err)

	_, err = ParseSlotTime("noon")
	assert.Error(t, err)
}

func TestParseSlotDate(t *testing.T) {
	d, err := ParseSlotDate("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseSlotDate("2026-13-01")
	assert.Error(t, err)

	_, err = ParseSlotDate("31/08/2026")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	today := Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
}
