package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/medidesk/clinic-platform/internal/calendar"
	"github.com/medidesk/clinic-platform/internal/observability/metrics"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

// AppointmentSource supplies the records a calendar render needs. Satisfied
// by *appointments.Service.
type AppointmentSource interface {
	ListRange(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, error)
}

// CalendarHandler serves rendered calendar views. The engine itself is pure;
// this handler is where the clock, the data source and the render policy
// (log-and-skip bad records) meet.
type CalendarHandler struct {
	source  AppointmentSource
	logger  *logging.Logger
	metrics *metrics.CalendarMetrics
	now     func() time.Time
}

// NewCalendarHandler creates the calendar HTTP handler. now is injectable
// for tests; nil means time.Now.
func NewCalendarHandler(source AppointmentSource, logger *logging.Logger, m *metrics.CalendarMetrics, now func() time.Time) *CalendarHandler {
	if source == nil {
		panic("handlers: appointment source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{source: source, logger: logger, metrics: m, now: now}
}

type calendarMeta struct {
	SkippedMalformed int `json:"skipped_malformed"`
	SkippedOffHours  int `json:"skipped_off_hours"`
}

type calendarResponse struct {
	calendar.View
	Meta calendarMeta `json:"meta"`
}

// GetCalendar renders the requested view.
// GET /api/calendar
// Query params:
//   - view:   month (default), week or day
//   - date:   reference date as YYYY-MM-DD (default: today)
//   - doctor: doctor id filter (optional)
//   - nav:    next, previous or today, applied to the state before rendering
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	today := h.now().UTC()

	mode := calendar.ViewMonth
	if v := r.URL.Query().Get("view"); v != "" {
		parsed, err := calendar.ParseViewMode(v)
		if err != nil {
			h.fail(w, "month", http.StatusBadRequest, `{"error": "view must be month, week or day"}`)
			return
		}
		mode = parsed
	}

	reference := today
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			h.fail(w, string(mode), http.StatusBadRequest, `{"error": "date must be YYYY-MM-DD"}`)
			return
		}
		reference = parsed
	}

	state := calendar.ViewState{
		Reference: reference,
		Mode:      mode,
		DoctorID:  r.URL.Query().Get("doctor"),
	}

	switch r.URL.Query().Get("nav") {
	case "":
	case "next":
		state = state.Next()
	case "previous":
		state = state.Previous()
	case "today":
		state = state.Today(today)
	default:
		h.fail(w, string(mode), http.StatusBadRequest, `{"error": "nav must be next, previous or today"}`)
		return
	}

	start, end := state.Range()
	appts, err := h.source.ListRange(r.Context(), start, end, state.DoctorID)
	if err != nil {
		h.logger.Error("failed to load appointments", "error", err,
			"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
		h.fail(w, string(mode), http.StatusInternalServerError, `{"error": "internal server error"}`)
		return
	}

	view := calendar.Build(state, today, appts)

	var meta calendarMeta
	for _, s := range view.Skipped {
		var malformed *calendar.MalformedTimeError
		switch {
		case errors.As(s.Err, &malformed):
			meta.SkippedMalformed++
			h.metrics.ObserveSkipped("malformed_time", 1)
			h.logger.Warn("appointment excluded from slot view",
				"appointment_id", s.Appointment.ID, "error", s.Err)
		case errors.Is(s.Err, calendar.ErrOffHours):
			meta.SkippedOffHours++
			h.metrics.ObserveSkipped("off_hours", 1)
		}
	}

	h.metrics.ObserveRender(string(view.Mode), "ok", time.Since(started).Seconds())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(calendarResponse{View: view, Meta: meta}); err != nil {
		h.logger.Error("failed to encode calendar view", "error", err)
	}
}

// GetLegend returns the status-to-category mapping for the calendar legend.
// GET /api/calendar/legend
func (h *CalendarHandler) GetLegend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"legend": calendar.Legend()}); err != nil {
		h.logger.Error("failed to encode legend", "error", err)
	}
}

// HealthCheck reports liveness.
// GET /health
func (h *CalendarHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

func (h *CalendarHandler) fail(w http.ResponseWriter, view string, code int, body string) {
	h.metrics.ObserveRender(view, "error", 0)
	http.Error(w, body, code)
}
