package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medidesk/clinic-platform/internal/doctors"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

// DoctorSource lists the doctors selectable in the calendar filter.
// Satisfied by *doctors.Repository.
type DoctorSource interface {
	List(ctx context.Context) ([]doctors.Doctor, error)
}

// DoctorsHandler serves the doctor list.
type DoctorsHandler struct {
	source DoctorSource
	logger *logging.Logger
}

// NewDoctorsHandler creates the doctors HTTP handler.
func NewDoctorsHandler(source DoctorSource, logger *logging.Logger) *DoctorsHandler {
	if source == nil {
		panic("handlers: doctor source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DoctorsHandler{source: source, logger: logger}
}

// ListDoctors returns every doctor, for the filter dropdown.
// GET /api/doctors
func (h *DoctorsHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	docs, err := h.source.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []doctors.Doctor{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"doctors": docs}); err != nil {
		h.logger.Error("failed to encode doctors", "error", err)
	}
}
