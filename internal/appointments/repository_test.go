package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/medidesk/clinic-platform/internal/calendar"
)

var apptCols = []string{"id", "patient_id", "doctor_id", "visit_date", "start_time", "end_time", "status", "reason"}

func TestRepository_ListRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, patient_id, doctor_id, visit_date, start_time, end_time, status, reason FROM appointments WHERE visit_date >= \$1 AND visit_date <= \$2 ORDER BY visit_date, start_time, id`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows(apptCols).
			AddRow("appt-1", "pat-1", "dr-1", start, "09:00", "09:30", "scheduled", "checkup").
			AddRow("appt-2", "pat-2", "dr-2", start.AddDate(0, 0, 3), "14:00", "15:00", "confirmed", ""))

	repo := NewRepositoryWithDB(mock)
	appts, err := repo.ListRange(context.Background(), start, end, "")
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}

	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}
	if appts[0].ID != "appt-1" || appts[0].Status != calendar.StatusScheduled {
		t.Errorf("unexpected first appointment: %+v", appts[0])
	}
	if appts[1].StartTime != "14:00" {
		t.Errorf("StartTime = %q, want 14:00", appts[1].StartTime)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_ListRange_DoctorFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`AND doctor_id = \$3 ORDER BY visit_date, start_time, id`).
		WithArgs(start, end, "dr-7").
		WillReturnRows(pgxmock.NewRows(apptCols).
			AddRow("appt-9", "pat-3", "dr-7", start, "08:00", "08:30", "completed", ""))

	repo := NewRepositoryWithDB(mock)
	appts, err := repo.ListRange(context.Background(), start, end, "dr-7")
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(appts) != 1 || appts[0].DoctorID != "dr-7" {
		t.Fatalf("unexpected result: %+v", appts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM appointments WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(apptCols))

	repo := NewRepositoryWithDB(mock)
	_, err = repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	visit := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(pgxmock.AnyArg(), "pat-1", "dr-1", visit, "10:00", "10:30", "scheduled", "follow-up").
		WillReturnRows(pgxmock.NewRows(apptCols).
			AddRow("new-id", "pat-1", "dr-1", visit, "10:00", "10:30", "scheduled", "follow-up"))

	repo := NewRepositoryWithDB(mock)
	a, err := repo.Create(context.Background(), CreateParams{
		PatientID: "pat-1",
		DoctorID:  "dr-1",
		Date:      visit,
		StartTime: "10:00",
		EndTime:   "10:30",
		Status:    calendar.StatusScheduled,
		Reason:    "follow-up",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.ID != "new-id" {
		t.Errorf("ID = %q", a.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_Create_RejectsUnknownStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRepositoryWithDB(mock)
	_, err = repo.Create(context.Background(), CreateParams{Status: "booked"})

	var unknown *calendar.UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownStatusError", err)
	}
	if unknown.Status != "booked" {
		t.Errorf("Status = %q", unknown.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should have run: %v", err)
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE appointments SET status = \$2`).
		WithArgs("appt-1", "cancelled").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewRepositoryWithDB(mock)
	if err := repo.UpdateStatus(context.Background(), "appt-1", calendar.StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE appointments SET status = \$2`).
		WithArgs("ghost", "completed").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRepositoryWithDB(mock)
	err = repo.UpdateStatus(context.Background(), "ghost", calendar.StatusCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
