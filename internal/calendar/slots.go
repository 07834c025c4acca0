package calendar

import "time"

// Business hours for week and day views. Slots cover each hour from open
// through close inclusive of the closing hour's start, so 08:00-17:00 yields
// ten one-hour slots per day.
const (
	OpenHour  = 8
	CloseHour = 17
)

// SlotsPerDay is the number of hour slots a single day contributes.
const SlotsPerDay = CloseHour - OpenHour + 1

// DaySlots builds the empty business-hour slots for a single day.
func DaySlots(date time.Time) []Slot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	slots := make([]Slot, 0, SlotsPerDay)
	for hour := OpenHour; hour <= CloseHour; hour++ {
		slots = append(slots, Slot{Date: day, Hour: hour})
	}
	return slots
}

// WeekSlots builds the empty slots for the Sunday-aligned week containing
// reference, ordered day-major then by hour.
func WeekSlots(reference time.Time) []Slot {
	start := StartOfWeek(reference)
	slots := make([]Slot, 0, 7*SlotsPerDay)
	for i := 0; i < 7; i++ {
		slots = append(slots, DaySlots(start.AddDate(0, 0, i))...)
	}
	return slots
}
