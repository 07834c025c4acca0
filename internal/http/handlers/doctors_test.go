package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medidesk/clinic-platform/internal/doctors"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

type stubDoctors struct {
	docs []doctors.Doctor
	err  error
}

func (s *stubDoctors) List(ctx context.Context) ([]doctors.Doctor, error) {
	return s.docs, s.err
}

func TestListDoctors(t *testing.T) {
	h := NewDoctorsHandler(&stubDoctors{docs: []doctors.Doctor{
		{ID: "dr-1", Name: "Alice Osei", Specialty: "Cardiology"},
		{ID: "dr-2", Name: "Ben Laurito"},
	}}, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rec := httptest.NewRecorder()
	h.ListDoctors(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Doctors []doctors.Doctor `json:"doctors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Doctors) != 2 || body.Doctors[0].Name != "Alice Osei" {
		t.Errorf("unexpected doctors: %+v", body.Doctors)
	}
}

func TestListDoctors_EmptyIsAnArray(t *testing.T) {
	h := NewDoctorsHandler(&stubDoctors{}, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rec := httptest.NewRecorder()
	h.ListDoctors(rec, req)

	if got := rec.Body.String(); got != "{\"doctors\":[]}\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestListDoctors_Failure(t *testing.T) {
	h := NewDoctorsHandler(&stubDoctors{err: errors.New("db down")}, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rec := httptest.NewRecorder()
	h.ListDoctors(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
