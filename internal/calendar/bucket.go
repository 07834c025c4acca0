package calendar

import (
	"errors"
	"sort"
)

// ErrOffHours marks an appointment whose start time parsed cleanly but falls
// outside the built business-hour slots. The record is reported as skipped
// rather than silently vanishing.
var ErrOffHours = errors.New("calendar: start time outside business hours")

// FillCells assigns each appointment to the month-grid cell matching its
// date. doctorID filters by doctor; the empty string keeps everything.
// Appointments dated outside the grid are excluded; callers needing strict
// validation must pre-filter. The input slices are
// never mutated; a filled copy of cells is returned.
func FillCells(cells []Cell, appts []Appointment, doctorID string) []Cell {
	filled := make([]Cell, len(cells))
	copy(filled, cells)
	for i := range filled {
		filled[i].Appointments = nil
	}

	for _, a := range appts {
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		for i := range filled {
			if SameDay(filled[i].Date, a.Date) {
				filled[i].Appointments = append(filled[i].Appointments, a)
				break
			}
		}
	}

	for i := range filled {
		sortByStartTime(filled[i].Appointments)
	}
	return filled
}

// FillSlots assigns each appointment to the hour slot matching its date and
// the hour of its start time. Records with a malformed start time, or with a
// start time outside the built hours, are returned as skipped instead of
// failing the build. Out-of-range dates are silently excluded, matching
// FillCells. Inputs are never mutated.
func FillSlots(slots []Slot, appts []Appointment, doctorID string) ([]Slot, []Skipped) {
	filled := make([]Slot, len(slots))
	copy(filled, slots)
	for i := range filled {
		filled[i].Appointments = nil
	}

	var skipped []Skipped
	for _, a := range appts {
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		inRange := false
		for i := range filled {
			if SameDay(filled[i].Date, a.Date) {
				inRange = true
				break
			}
		}
		if !inRange {
			continue
		}

		hour, err := HourOf(a.StartTime)
		if err != nil {
			skipped = append(skipped, Skipped{Appointment: a, Err: err})
			continue
		}

		placed := false
		for i := range filled {
			if filled[i].Hour == hour && SameDay(filled[i].Date, a.Date) {
				filled[i].Appointments = append(filled[i].Appointments, a)
				placed = true
				break
			}
		}
		if !placed {
			skipped = append(skipped, Skipped{Appointment: a, Err: ErrOffHours})
		}
	}

	for i := range filled {
		sortByStartTime(filled[i].Appointments)
	}
	return filled, skipped
}

// sortByStartTime orders appointments by start time ascending, keeping the
// relative input order of equal times. "HH:MM" strings compare correctly as
// plain strings.
func sortByStartTime(appts []Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].StartTime < appts[j].StartTime
	})
}
