package calendar

import "time"

// View is the engine's complete output for one render pass. Cells is
// populated for month mode, Slots for week and day modes. Skipped carries
// the per-record defects the bucketer tolerated so the caller can log and
// count them.
type View struct {
	Mode      ViewMode  `json:"mode"`
	Reference time.Time `json:"reference"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	DoctorID  string    `json:"doctor_id,omitempty"`
	Cells     []Cell    `json:"cells,omitempty"`
	Slots     []Slot    `json:"slots,omitempty"`
	Skipped   []Skipped `json:"-"`
}

// Build renders the view for state: it resolves the date range, constructs
// the empty grid or slots, and buckets the appointments into it. The result
// is a pure projection: the same inputs always produce the same view, and
// neither appts nor any internal structure is shared with previous calls.
func Build(state ViewState, today time.Time, appts []Appointment) View {
	start, end := state.Range()
	view := View{
		Mode:      state.Mode,
		Reference: state.Reference,
		Start:     start,
		End:       end,
		DoctorID:  state.DoctorID,
	}

	switch state.Mode {
	case ViewWeek:
		view.Slots, view.Skipped = FillSlots(WeekSlots(state.Reference), appts, state.DoctorID)
	case ViewDay:
		view.Slots, view.Skipped = FillSlots(DaySlots(state.Reference), appts, state.DoctorID)
	default:
		view.Cells = FillCells(MonthGrid(state.Reference, today), appts, state.DoctorID)
	}
	return view
}
