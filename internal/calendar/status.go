package calendar

import "fmt"

// Status is the lifecycle state of an appointment. The set is closed: values
// outside it are a data-integrity problem the upstream must fix, never
// silently coerced.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// Category is the presentation bucket a status belongs to. The engine owns
// the mapping but not the colors; a legend consumer decides how each
// category looks.
type Category string

const (
	CategoryPending  Category = "pending"
	CategoryActive   Category = "active"
	CategoryDone     Category = "done"
	CategoryInactive Category = "inactive"
	CategoryMissed   Category = "missed"
)

// UnknownStatusError reports a status value outside the closed taxonomy.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("calendar: unknown appointment status %q", e.Status)
}

var statusCategories = map[Status]Category{
	StatusScheduled: CategoryPending,
	StatusConfirmed: CategoryActive,
	StatusCompleted: CategoryDone,
	StatusCancelled: CategoryInactive,
	StatusNoShow:    CategoryMissed,
}

// Category returns the presentation category for s, or *UnknownStatusError
// when s is outside the taxonomy.
func (s Status) Category() (Category, error) {
	c, ok := statusCategories[s]
	if !ok {
		return "", &UnknownStatusError{Status: string(s)}
	}
	return c, nil
}

// Valid reports whether s belongs to the closed taxonomy.
func (s Status) Valid() bool {
	_, ok := statusCategories[s]
	return ok
}

// Statuses returns the taxonomy in a fixed display order.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}
}

// Legend returns the status-to-category mapping in display order, for
// presentation layers that render a color key.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(statusCategories))
	for _, s := range Statuses() {
		entries = append(entries, LegendEntry{Status: s, Category: statusCategories[s]})
	}
	return entries
}

// LegendEntry pairs a status with its presentation category.
type LegendEntry struct {
	Status   Status   `json:"status"`
	Category Category `json:"category"`
}
