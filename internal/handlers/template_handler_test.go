package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence_LaterThisYear(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	occurrence, ok := nextOccurrence("12-25", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), occurrence)
}

func TestNextOccurrence_AlreadyPassedRollsToNextYear(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	occurrence, ok := nextOccurrence("02-14", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), occurrence)
}

func TestNextOccurrence_InvalidFormat(t *testing.T) {
	_, ok := nextOccurrence("december 25", time.Now())
	assert.False(t, ok)

	_, ok = nextOccurrence("13-40", time.Now())
	assert.False(t, ok)
}
