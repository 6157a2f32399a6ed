package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseBirthday validates a month-day string and returns it in canonical
// zero-padded MM-DD form. Calendar validity is checked against year 2000,
// a leap year, so "02-29" is accepted.
func ParseBirthday(raw string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrBadDate, raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, raw)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, raw)
	}

	// time.Date normalizes out-of-range components (month 13 becomes
	// January), so an exact round-trip is the validity check.
	check := time.Date(2000, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(check.Month()) != month || check.Day() != day {
		return "", fmt.Errorf("%w: %q", ErrBadDate, raw)
	}
	return fmt.Sprintf("%02d-%02d", month, day), nil
}

// IsLeapYear reports whether the Gregorian year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// EffectiveBirthday maps a leap-day birthday onto February 28 in years
// where the local calendar has no February 29. Other values pass through.
func EffectiveBirthday(md string, year int) string {
	if md == "02-29" && !IsLeapYear(year) {
		return "02-28"
	}
	return md
}
