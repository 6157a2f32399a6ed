package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrBadTime = errors.New("unrecognized time format")
	ErrBadDate = errors.New("unrecognized date format")
)

// ResolveOffset derives a UTC offset from the wall-clock time a user claims
// it is right now. The stated time is pinned to nowUTC's calendar date, the
// signed difference in hours is snapped to the nearest half hour, and the
// result is wrapped into [-12, +14].
//
// Accepted input: "1:27 am" / "11:05 PM" (12-hour with am/pm marker) or
// "13:27" (24-hour). Anything else fails with ErrBadTime.
func ResolveOffset(raw string, nowUTC time.Time) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	layout := "15:04"
	if strings.Contains(s, "am") || strings.Contains(s, "pm") {
		layout = "3:04 pm"
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, raw)
	}

	nowUTC = nowUTC.UTC()
	stated := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)

	// Exact quarter-hour ties snap away from zero: a stated clock 15
	// minutes ahead resolves to +0.5, 15 minutes behind to -0.5.
	off := math.Round(stated.Sub(nowUTC).Hours()*2) / 2
	if off > 14 {
		off -= 24
	}
	if off < -12 {
		off += 24
	}
	return off, nil
}

// FormatOffset renders an offset as it appears in user-facing replies,
// e.g. "+5.5" or "-4".
func FormatOffset(offset float64) string {
	return fmt.Sprintf("%+g", offset)
}

// FormatClock renders a local instant as a 12-hour clock, e.g. "01:27 AM".
func FormatClock(local time.Time) string {
	return local.Format("03:04 PM")
}
