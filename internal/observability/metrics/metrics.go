package metrics

import "github.com/prometheus/client_golang/prometheus"

// CalendarMetrics exposes counters/histograms for calendar rendering and the
// appointment fetch path.
type CalendarMetrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	skippedTotal   *prometheus.CounterVec
	cacheTotal     *prometheus.CounterVec
}

func NewCalendarMetrics(reg prometheus.Registerer) *CalendarMetrics {
	m := &CalendarMetrics{
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "calendar",
			Name:      "renders_total",
			Help:      "Total calendar renders",
		}, []string{"view", "status"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "calendar",
			Name:      "render_duration_seconds",
			Help:      "Latency of calendar render requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		skippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "calendar",
			Name:      "skipped_appointments_total",
			Help:      "Appointments excluded from slot views",
		}, []string{"reason"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "calendar",
			Name:      "appointment_cache_total",
			Help:      "Appointment list cache lookups",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.rendersTotal, m.renderDuration, m.skippedTotal, m.cacheTotal)
	return m
}

func (m *CalendarMetrics) ObserveRender(view, status string, seconds float64) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(view, status).Inc()
	m.renderDuration.WithLabelValues(view).Observe(seconds)
}

func (m *CalendarMetrics) ObserveSkipped(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.skippedTotal.WithLabelValues(reason).Add(float64(n))
}

func (m *CalendarMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}
