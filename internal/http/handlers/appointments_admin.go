package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medidesk/clinic-platform/internal/appointments"
	"github.com/medidesk/clinic-platform/internal/calendar"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

// AppointmentAdmin is the write surface the admin endpoints need. Satisfied
// by *appointments.Service.
type AppointmentAdmin interface {
	Get(ctx context.Context, id string) (*calendar.Appointment, error)
	Create(ctx context.Context, p appointments.CreateParams) (*calendar.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status calendar.Status) error
}

// AppointmentsAdminHandler provides staff endpoints for managing
// appointments.
type AppointmentsAdminHandler struct {
	svc    AppointmentAdmin
	logger *logging.Logger
}

// NewAppointmentsAdminHandler creates the admin appointments handler.
func NewAppointmentsAdminHandler(svc AppointmentAdmin, logger *logging.Logger) *AppointmentsAdminHandler {
	if svc == nil {
		panic("handlers: appointments service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsAdminHandler{svc: svc, logger: logger}
}

// Routes returns a chi router with the admin appointment routes.
func (h *AppointmentsAdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateAppointment)
	r.Get("/{appointmentID}", h.GetAppointment)
	r.Patch("/{appointmentID}/status", h.UpdateStatus)
	return r
}

// CreateAppointmentRequest is the request body for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// CreateAppointment books a new appointment.
// POST /admin/appointments
func (h *AppointmentsAdminHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.PatientID == "" || req.DoctorID == "" {
		http.Error(w, `{"error": "patient_id and doctor_id are required"}`, http.StatusBadRequest)
		return
	}

	visit, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, `{"error": "date must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}
	for _, hhmm := range []string{req.StartTime, req.EndTime} {
		if _, err := calendar.HourOf(hhmm); err != nil {
			http.Error(w, `{"error": "start_time and end_time must be HH:MM"}`, http.StatusBadRequest)
			return
		}
	}
	if req.EndTime <= req.StartTime {
		http.Error(w, `{"error": "end_time must be after start_time"}`, http.StatusBadRequest)
		return
	}

	status := calendar.Status(req.Status)
	if req.Status == "" {
		status = calendar.StatusScheduled
	}

	a, err := h.svc.Create(r.Context(), appointments.CreateParams{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      visit,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
		Reason:    req.Reason,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		h.logger.Error("failed to encode appointment", "error", err)
	}
}

// GetAppointment returns one appointment.
// GET /admin/appointments/{appointmentID}
func (h *AppointmentsAdminHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a); err != nil {
		h.logger.Error("failed to encode appointment", "error", err)
	}
}

// UpdateStatusRequest is the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an appointment to a new lifecycle state.
// PATCH /admin/appointments/{appointmentID}/status
func (h *AppointmentsAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, calendar.Status(req.Status)); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status": "updated"}`))
}

func (h *AppointmentsAdminHandler) writeError(w http.ResponseWriter, err error) {
	var unknown *calendar.UnknownStatusError
	switch {
	case errors.Is(err, appointments.ErrNotFound):
		http.Error(w, `{"error": "appointment not found"}`, http.StatusNotFound)
	case errors.As(err, &unknown):
		http.Error(w, `{"error": "unknown appointment status"}`, http.StatusUnprocessableEntity)
	default:
		h.logger.Error("appointment admin request failed", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}
