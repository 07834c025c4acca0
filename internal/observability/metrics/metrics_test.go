package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCalendarMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCalendarMetrics(reg)
	m.ObserveRender("month", "ok", 0.02)
	m.ObserveRender("week", "error", 0.5)
	m.ObserveSkipped("malformed_time", 2)
	m.ObserveSkipped("off_hours", 0)
	m.ObserveCache(true)
	m.ObserveCache(false)
}

func TestCalendarMetricsNilSafe(t *testing.T) {
	var m *CalendarMetrics
	m.ObserveRender("month", "ok", 0.1)
	m.ObserveSkipped("off_hours", 1)
	m.ObserveCache(true)
}
