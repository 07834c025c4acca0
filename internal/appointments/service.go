package appointments

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medidesk/clinic-platform/internal/calendar"
	"github.com/medidesk/clinic-platform/internal/observability/metrics"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

var apptTracer = otel.Tracer("clinic.internal.appointments")

// store is the persistence surface the service needs; satisfied by
// *Repository and by test fakes.
type store interface {
	ListRange(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, error)
	Get(ctx context.Context, id string) (*calendar.Appointment, error)
	Create(ctx context.Context, p CreateParams) (*calendar.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status calendar.Status) error
}

// Service fronts the repository with caching and tracing. It is what the
// calendar HTTP layer talks to.
type Service struct {
	repo    store
	cache   *Cache
	logger  *logging.Logger
	metrics *metrics.CalendarMetrics
}

// NewService constructs an appointments service. cache and m may be nil.
func NewService(repo store, cache *Cache, logger *logging.Logger, m *metrics.CalendarMetrics) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger, metrics: m}
}

// ListRange serves the appointment list for a date range, from cache when
// possible.
func (s *Service) ListRange(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.list_range")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.range_start", start.Format("2006-01-02")),
		attribute.String("clinic.range_end", end.Format("2006-01-02")),
		attribute.String("clinic.doctor_id", doctorID),
	)

	if appts, ok := s.cache.Get(ctx, start, end, doctorID); ok {
		s.metrics.ObserveCache(true)
		span.SetAttributes(attribute.Bool("clinic.cache_hit", true))
		return appts, nil
	}
	s.metrics.ObserveCache(false)

	appts, err := s.repo.ListRange(ctx, start, end, doctorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Set(ctx, start, end, doctorID, appts)
	return appts, nil
}

// Get loads one appointment.
func (s *Service) Get(ctx context.Context, id string) (*calendar.Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.get")
	defer span.End()
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return a, nil
}

// Create books a new appointment and invalidates cached ranges.
func (s *Service) Create(ctx context.Context, p CreateParams) (*calendar.Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.create")
	defer span.End()

	a, err := s.repo.Create(ctx, p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("appointment created",
		"appointment_id", a.ID,
		"doctor_id", a.DoctorID,
		"date", a.Date.Format("2006-01-02"),
	)
	return a, nil
}

// UpdateStatus changes an appointment's lifecycle state and invalidates
// cached ranges.
func (s *Service) UpdateStatus(ctx context.Context, id string, status calendar.Status) error {
	ctx, span := apptTracer.Start(ctx, "appointments.update_status")
	defer span.End()

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		span.RecordError(err)
		return err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("appointment status updated", "appointment_id", id, "status", string(status))
	return nil
}
