// Package dateutil works in local calendar days. Streaks and review dates
// compare the day the learner experienced, so everything here formats and
// diffs in local time, never UTC.
package dateutil

import (
	"fmt"
	"time"
)

// DayFormat is the canonical local-day layout
const DayFormat = "2006-01-02"

// LocalDay formats t as its local calendar day, e.g. "2026-08-30"
func LocalDay(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// Today returns the current local calendar day string
func Today() string {
	return LocalDay(time.Now())
}

// ParseDay parses a "YYYY-MM-DD" string into a local midnight time
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day string %q: %v", s, err)
	}
	return t, nil
}

// DaysBetween returns the whole calendar days from day string a to day
// string b (positive when b is later). DST shifts don't affect the count
// because both ends are normalized to local midnight and rounded.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	hours := tb.Sub(ta).Hours()
	days := int(hours / 24)
	if rem := hours - float64(days)*24; rem > 12 {
		days++
	} else if rem < -12 {
		days--
	}
	return days, nil
}

// DaysAgo reports how many local calendar days ago the given day was
func DaysAgo(day string, now time.Time) (int, error) {
	return DaysBetween(day, LocalDay(now))
}
