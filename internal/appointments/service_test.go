package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/medidesk/clinic-platform/internal/calendar"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

type fakeStore struct {
	appts     []calendar.Appointment
	listCalls int
	created   []CreateParams
	updated   map[string]calendar.Status
	err       error
}

func (f *fakeStore) ListRange(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, error) {
	f.listCalls++
	return f.appts, f.err
}

func (f *fakeStore) Get(ctx context.Context, id string) (*calendar.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.appts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Create(ctx context.Context, p CreateParams) (*calendar.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	return &calendar.Appointment{ID: "created", DoctorID: p.DoctorID, Date: p.Date, Status: p.Status}, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status calendar.Status) error {
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = map[string]calendar.Status{}
	}
	f.updated[id] = status
	return nil
}

func newServiceWithCache(t *testing.T, repo store) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute), logging.Default(), nil)
}

func TestService_ListRangeUsesCache(t *testing.T) {
	repo := &fakeStore{appts: sampleAppointments()}
	svc := newServiceWithCache(t, repo)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		appts, err := svc.ListRange(ctx, start, end, "")
		if err != nil {
			t.Fatalf("ListRange failed: %v", err)
		}
		if len(appts) != 1 {
			t.Fatalf("got %d appointments", len(appts))
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("repository hit %d times, want 1 (cache should serve repeats)", repo.listCalls)
	}
}

func TestService_CreateInvalidatesCache(t *testing.T) {
	repo := &fakeStore{appts: sampleAppointments()}
	svc := newServiceWithCache(t, repo)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	if _, err := svc.ListRange(ctx, start, end, ""); err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}

	_, err := svc.Create(ctx, CreateParams{
		PatientID: "pat-2",
		DoctorID:  "dr-1",
		Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "11:00",
		EndTime:   "11:30",
		Status:    calendar.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.ListRange(ctx, start, end, ""); err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("repository hit %d times, want 2 (create must invalidate)", repo.listCalls)
	}
}

func TestService_UpdateStatusInvalidatesCache(t *testing.T) {
	repo := &fakeStore{appts: sampleAppointments()}
	svc := newServiceWithCache(t, repo)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	if _, err := svc.ListRange(ctx, start, end, ""); err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if err := svc.UpdateStatus(ctx, "appt-1", calendar.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if _, err := svc.ListRange(ctx, start, end, ""); err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}

	if repo.listCalls != 2 {
		t.Errorf("repository hit %d times, want 2", repo.listCalls)
	}
	if repo.updated["appt-1"] != calendar.StatusCompleted {
		t.Errorf("status not propagated to store: %v", repo.updated)
	}
}

func TestService_WorksWithoutCache(t *testing.T) {
	repo := &fakeStore{appts: sampleAppointments()}
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if _, err := svc.ListRange(ctx, start, end, ""); err != nil {
			t.Fatalf("ListRange failed: %v", err)
		}
	}
	if repo.listCalls != 2 {
		t.Errorf("repository hit %d times, want 2 without a cache", repo.listCalls)
	}
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeStore{err: boom}, nil, nil, nil)
	ctx := context.Background()

	if _, err := svc.ListRange(ctx, time.Now(), time.Now(), ""); !errors.Is(err, boom) {
		t.Errorf("ListRange err = %v", err)
	}
	if _, err := svc.Get(ctx, "x"); !errors.Is(err, boom) {
		t.Errorf("Get err = %v", err)
	}
	if _, err := svc.Create(ctx, CreateParams{Status: calendar.StatusScheduled}); !errors.Is(err, boom) {
		t.Errorf("Create err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, "x", calendar.StatusCompleted); !errors.Is(err, boom) {
		t.Errorf("UpdateStatus err = %v", err)
	}
}
