// Package appointments persists and serves the appointment records the
// calendar engine consumes. It is the engine's fetch collaborator: network
// and database concerns live here, never in internal/calendar.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medidesk/clinic-platform/internal/calendar"
)

// ErrNotFound is returned when an appointment id does not exist.
var ErrNotFound = errors.New("appointments: not found")

// repoDB defines the database interface needed by Repository
type repoDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides persistence for appointment records.
type Repository struct {
	db repoDB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db repoDB) *Repository {
	return &Repository{db: db}
}

const appointmentColumns = `id, patient_id, doctor_id, visit_date, start_time, end_time, status, reason`

// ListRange returns all appointments dated within [start, end] inclusive,
// optionally restricted to one doctor, ordered by date then start time.
func (r *Repository) ListRange(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE visit_date >= $1 AND visit_date <= $2`
	args := []any{start, end}
	if doctorID != "" {
		query += ` AND doctor_id = $3`
		args = append(args, doctorID)
	}
	query += ` ORDER BY visit_date, start_time, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list range: %w", err)
	}
	defer rows.Close()

	var appts []calendar.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan row: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate rows: %w", err)
	}
	return appts, nil
}

// Get loads a single appointment by id.
func (r *Repository) Get(ctx context.Context, id string) (*calendar.Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: get: %w", err)
	}
	return &a, nil
}

// CreateParams carries the caller-supplied fields for a new appointment.
type CreateParams struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	StartTime string
	EndTime   string
	Status    calendar.Status
	Reason    string
}

// Create inserts a new appointment and returns the stored record. The status
// must belong to the engine taxonomy; unknown values are rejected here so bad
// data never reaches the calendar.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*calendar.Appointment, error) {
	if !p.Status.Valid() {
		return nil, &calendar.UnknownStatusError{Status: string(p.Status)}
	}

	id := uuid.NewString()
	row := r.db.QueryRow(ctx,
		`INSERT INTO appointments (id, patient_id, doctor_id, visit_date, start_time, end_time, status, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+appointmentColumns,
		id, p.PatientID, p.DoctorID, p.Date, p.StartTime, p.EndTime, string(p.Status), p.Reason,
	)
	a, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("appointments: insert: %w", err)
	}
	return &a, nil
}

// UpdateStatus moves an appointment to a new lifecycle state.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status calendar.Status) error {
	if !status.Valid() {
		return &calendar.UnknownStatusError{Status: string(status)}
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (calendar.Appointment, error) {
	var a calendar.Appointment
	var status string
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.StartTime, &a.EndTime, &status, &a.Reason)
	if err != nil {
		return calendar.Appointment{}, err
	}
	a.Status = calendar.Status(status)
	return a, nil
}
