package domain

import "time"

// Profile is one member's registration: a claimed UTC offset, a birthday,
// and the bookkeeping the scheduler maintains. Nil means never set.
type Profile struct {
	UserID        string   // Discord snowflake
	UTCOffset     *float64 // half-hour steps in [-12, +14]
	Birthday      *string  // canonical MM-DD; "02-29" allowed
	LastAnnounced *int     // local year of the last announcement
	LastChecked   *string  // last local date (YYYY-MM-DD) the scheduler evaluated
	CreatedAt     time.Time
}

// Configured reports whether the scheduler has enough to evaluate this user.
func (p *Profile) Configured() bool {
	return p.UTCOffset != nil && p.Birthday != nil
}

// AtOffset shifts a UTC instant by the given offset in hours. The result
// keeps the UTC location; only the wall-clock reading matters to callers.
func AtOffset(utc time.Time, offset float64) time.Time {
	return utc.UTC().Add(time.Duration(offset * float64(time.Hour)))
}

// DateKey formats a local instant as the YYYY-MM-DD key used for the
// once-per-local-day gate.
func DateKey(local time.Time) string {
	return local.Format("2006-01-02")
}
