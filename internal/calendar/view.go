package calendar

import (
	"fmt"
	"time"
)

// ViewMode selects how the calendar is laid out. Any mode is reachable from
// any other; mode, reference date and doctor filter are orthogonal axes.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// ParseViewMode validates a mode string from an untrusted source.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewMonth, ViewWeek, ViewDay:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("calendar: unknown view mode %q", s)
}

// ViewState is the full navigation state: the reference date that picks
// which period is shown, the view mode, and the active doctor filter (empty
// means no filter). It is a value type; every transition returns a new state
// and the old one stays usable. Rebuilding a state from its fields is always
// equivalent to rendering it; there is no hidden state.
type ViewState struct {
	Reference time.Time
	Mode      ViewMode
	DoctorID  string
}

// NewViewState returns the default state: month view anchored at reference,
// no doctor filter.
func NewViewState(reference time.Time) ViewState {
	return ViewState{Reference: reference, Mode: ViewMonth}
}

// Next advances the reference date by one period: a month, a week or a day
// depending on the mode. Month stepping anchors at the first of the month so
// a Jan 31 reference lands in February, never skipping a month.
func (s ViewState) Next() ViewState {
	return s.step(1)
}

// Previous moves the reference date back by one period, symmetric to Next.
func (s ViewState) Previous() ViewState {
	return s.step(-1)
}

func (s ViewState) step(dir int) ViewState {
	switch s.Mode {
	case ViewWeek:
		s.Reference = s.Reference.AddDate(0, 0, 7*dir)
	case ViewDay:
		s.Reference = s.Reference.AddDate(0, 0, dir)
	default:
		s.Reference = StartOfMonth(s.Reference).AddDate(0, dir, 0)
	}
	return s
}

// Today re-anchors the view at the caller-supplied current date.
func (s ViewState) Today(now time.Time) ViewState {
	s.Reference = now
	return s
}

// WithMode switches the view mode without touching the reference date.
func (s ViewState) WithMode(mode ViewMode) ViewState {
	s.Mode = mode
	return s
}

// WithDoctor replaces the doctor filter; the empty string clears it.
func (s ViewState) WithDoctor(doctorID string) ViewState {
	s.DoctorID = doctorID
	return s
}

// Range resolves the calendar days the active view covers, inclusive on
// both ends. The month range includes the padding days so every cell of the
// grid can be filled.
func (s ViewState) Range() (start, end time.Time) {
	switch s.Mode {
	case ViewWeek:
		start = StartOfWeek(s.Reference)
		return start, start.AddDate(0, 0, 6)
	case ViewDay:
		day := time.Date(s.Reference.Year(), s.Reference.Month(), s.Reference.Day(), 0, 0, 0, 0, s.Reference.Location())
		return day, day
	default:
		first := StartOfMonth(s.Reference)
		last := EndOfMonth(s.Reference)
		return first.AddDate(0, 0, -WeekdayIndex(first)), last.AddDate(0, 0, 6-WeekdayIndex(last))
	}
}
