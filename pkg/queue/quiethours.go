package queue

import (
	"strconv"
	"strings"
	"time"
)

// quietHoursGate evaluates a tenant's quiet-hours window against now and,
// when gated, the next allowed instant — always strictly in the future.
//
// start/end are wall-clock "HH:MM" strings. Either missing or unparsable
// disables the gate. A degenerate window (start == end) is never quiet.
// A wrapping window (start > end) is quiet when cur >= start OR cur < end;
// a non-wrapping window (start < end) is quiet when cur is in [start, end).
func quietHoursGate(start, end string, now time.Time) (quiet bool, nextAllowed time.Time) {
	startMin, ok1 := parseHHMM(start)
	endMin, ok2 := parseHHMM(end)
	if !ok1 || !ok2 {
		return false, time.Time{}
	}

	curMin := now.Hour()*60 + now.Minute()

	switch {
	case startMin == endMin:
		return false, time.Time{}

	case startMin < endMin:
		// Non-wrapping: quiet iff cur in [start, end).
		if curMin < startMin || curMin >= endMin {
			return false, time.Time{}
		}
		next := atMinutesToday(now, endMin)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return true, next

	default:
		// Wrapping: quiet iff cur >= start OR cur < end.
		if curMin < startMin && curMin >= endMin {
			return false, time.Time{}
		}
		next := atMinutesToday(now, endMin)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return true, next
	}
}

// parseHHMM parses "HH:MM" into minutes-since-midnight. Returns ok=false for
// anything malformed, including an empty string.
func parseHHMM(s string) (minutes int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func atMinutesToday(now time.Time, minutes int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), minutes/60, minutes%60, 0, 0, now.Location())
}
