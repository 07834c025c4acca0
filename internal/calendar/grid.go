package calendar

import "time"

// MonthGrid builds the ordered day cells for the month containing reference:
// leading padding from the prior month so the grid starts on a Sunday, one
// cell per in-month day, then trailing padding to finish the last week. The
// result length is always a multiple of 7 and consecutive cells are exactly
// one day apart. today is injected by the caller; the builder never reads
// the clock.
func MonthGrid(reference, today time.Time) []Cell {
	first := StartOfMonth(reference)
	last := EndOfMonth(reference)

	gridStart := first.AddDate(0, 0, -WeekdayIndex(first))
	gridEnd := last.AddDate(0, 0, 6-WeekdayIndex(last))

	var cells []Cell
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		cells = append(cells, Cell{
			Date:    d,
			InMonth: d.Month() == reference.Month(),
			IsToday: SameDay(d, today),
		})
	}
	return cells
}
