package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCutoff(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cutoff := Cutoff(now, 60)
	assert.Equal(t, time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC), cutoff)

	// A record created just inside the window survives
	recent := now.AddDate(0, 0, -59)
	assert.True(t, recent.After(cutoff))

	// One created outside it does not
	old := now.AddDate(0, 0, -61)
	assert.True(t, old.Before(cutoff))
}
