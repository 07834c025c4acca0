// Package calendar turns a reference date, a view mode, a doctor filter and a
// flat list of appointment records into a renderable grid of time buckets.
// It performs no I/O: the appointment list and the current date are supplied
// by the caller, and the output is plain data for a presentation layer.
package calendar

import "time"

// Appointment is a single scheduled visit as supplied by the data source.
// The engine treats it as read-only: Date identifies the calendar day,
// StartTime/EndTime are wall-clock "HH:MM" strings, and Reason is opaque
// display text.
type Appointment struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	// Date carries year/month/day only; any time-of-day component is ignored.
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    Status    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

// Cell is one day of a month grid. InMonth is false for padding days
// borrowed from adjacent months; IsToday is computed against the "today"
// value injected at build time and is only refreshed by rebuilding.
type Cell struct {
	Date         time.Time     `json:"date"`
	InMonth      bool          `json:"in_month"`
	IsToday      bool          `json:"is_today"`
	Appointments []Appointment `json:"appointments"`
}

// Slot is one hour of a week or day view.
type Slot struct {
	Date         time.Time     `json:"date"`
	Hour         int           `json:"hour"`
	Appointments []Appointment `json:"appointments"`
}

// Skipped records an appointment that could not be placed in an hour slot,
// together with the reason. One bad record must not blank the calendar, so
// the bucketer collects these instead of failing the whole build.
type Skipped struct {
	Appointment Appointment
	Err         error
}
