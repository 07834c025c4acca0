package calendar

import (
	"fmt"
	"time"
)

// MalformedTimeError reports a time-of-day string that is not strict
// two-digit "HH:MM" with hour 00-23 and minute 00-59.
type MalformedTimeError struct {
	Value string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("calendar: malformed time %q, want HH:MM", e.Value)
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day and location offsets within the stored values.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfMonth returns midnight on the first day of d's month.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth returns midnight on the last day of d's month. Day zero of the
// following month rolls back correctly across year boundaries and leap
// Februaries.
func EndOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

// WeekdayIndex returns d's day of week with 0 = Sunday.
func WeekdayIndex(d time.Time) int {
	return int(d.Weekday())
}

// StartOfWeek returns midnight on the Sunday of d's week.
func StartOfWeek(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()-WeekdayIndex(d), 0, 0, 0, 0, d.Location())
}

// HourOf parses the hour from a strict "HH:MM" string. Anything else,
// including single-digit hours like "9:00", yields a *MalformedTimeError.
func HourOf(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, &MalformedTimeError{Value: hhmm}
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return 0, &MalformedTimeError{Value: hhmm}
		}
	}
	hour := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, &MalformedTimeError{Value: hhmm}
	}
	return hour, nil
}
