package domain

import "time"

const ExpiryWarningWindowDays = 30

type ExpiryState string

const (
	ExpiryNone     ExpiryState = "none"
	ExpiryExpired  ExpiryState = "expired"
	ExpiryExpiring ExpiryState = "expiring"
)

// ExpiryStatus carries DaysUntilExpiry only when Status is ExpiryExpiring,
// including 0 for a certificate that expires today.
type ExpiryStatus struct {
	Status          ExpiryState `json:"status"`
	DaysUntilExpiry *int        `json:"days_until_expiry,omitempty"`
}

// ExpiryStatusAt classifies the certificate's expiry date relative to the
// calendar day of now. Certificates more than ExpiryWarningWindowDays out are
// reported as ExpiryNone, the same as certificates without an expiry date.
func ExpiryStatusAt(c Certificate, now time.Time) ExpiryStatus {
	if c.ExpiryDate == nil {
		return ExpiryStatus{Status: ExpiryNone}
	}
	days := DaysBetween(now, *c.ExpiryDate)
	switch {
	case days < 0:
		return ExpiryStatus{Status: ExpiryExpired}
	case days <= ExpiryWarningWindowDays:
		return ExpiryStatus{Status: ExpiryExpiring, DaysUntilExpiry: &days}
	default:
		return ExpiryStatus{Status: ExpiryNone}
	}
}

// DaysBetween counts whole calendar days from the day of from to the day of to.
// Both dates are read in their own location, so a date stored at UTC midnight
// compares as that calendar date regardless of the caller's zone.
func DaysBetween(from, to time.Time) int {
	a := CalendarDate(from)
	b := CalendarDate(to)
	return int(b.Sub(a).Hours() / 24)
}

// CalendarDate drops the clock and zone of t, keeping its calendar date at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
