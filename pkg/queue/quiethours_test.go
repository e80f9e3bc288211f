package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hh, mm int) time.Time {
	return time.Date(2026, 7, 30, hh, mm, 0, 0, time.UTC)
}

func TestQuietHoursGate_Wrapping(t *testing.T) {
	quiet, next := quietHoursGate("21:00", "08:00", at(23, 59))
	assert.True(t, quiet)
	assert.True(t, next.After(at(23, 59)))

	quiet, _ = quietHoursGate("21:00", "08:00", at(8, 0))
	assert.False(t, quiet)

	quiet, _ = quietHoursGate("21:00", "08:00", at(20, 59))
	assert.False(t, quiet)
}

func TestQuietHoursGate_NonWrapping(t *testing.T) {
	quiet, next := quietHoursGate("13:00", "14:00", at(13, 30))
	assert.True(t, quiet)
	assert.True(t, next.After(at(13, 30)))

	quiet, _ = quietHoursGate("13:00", "14:00", at(14, 0))
	assert.False(t, quiet)
}

func TestQuietHoursGate_Degenerate(t *testing.T) {
	quiet, _ := quietHoursGate("09:00", "09:00", at(9, 0))
	assert.False(t, quiet)
}

func TestQuietHoursGate_MissingOrInvalidDisablesGate(t *testing.T) {
	quiet, _ := quietHoursGate("", "08:00", at(23, 0))
	assert.False(t, quiet)

	quiet, _ = quietHoursGate("21:00", "", at(23, 0))
	assert.False(t, quiet)

	quiet, _ = quietHoursGate("not-a-time", "08:00", at(23, 0))
	assert.False(t, quiet)
}

func TestQuietHoursGate_NextAllowedAlwaysStrictlyFuture(t *testing.T) {
	cases := []struct {
		start, end string
		now        time.Time
	}{
		{"21:00", "08:00", at(23, 59)},
		{"21:00", "08:00", at(0, 0)},
		{"13:00", "14:00", at(13, 0)},
		{"13:00", "14:00", at(13, 59)},
	}
	for _, c := range cases {
		quiet, next := quietHoursGate(c.start, c.end, c.now)
		if quiet {
			assert.True(t, next.After(c.now), "next allowed instant must be strictly future for %+v", c)
		}
	}
}
