package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/repository"
)

// fakeHoursStore implements OperatingHoursStore with overridable behavior
// per test.
type fakeHoursStore struct {
	OverlappingFn func(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error)
	GetByIDFn     func(ctx context.Context, id uint64) (*model.OperatingHours, error)
	CreateFn      func(ctx context.Context, oh *model.OperatingHours) error
	DeleteFn      func(ctx context.Context, id uint64) error
}

func (f *fakeHoursStore) Overlapping(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error) {
	return f.OverlappingFn(ctx, rng)
}

func (f *fakeHoursStore) GetByID(ctx context.Context, id uint64) (*model.OperatingHours, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeHoursStore) Create(ctx context.Context, oh *model.OperatingHours) error {
	return f.CreateFn(ctx, oh)
}

func (f *fakeHoursStore) Delete(ctx context.Context, id uint64) error {
	return f.DeleteFn(ctx, id)
}

func mustRange(t *testing.T, start, end time.Time) model.TimeRange {
	t.Helper()
	rng, err := model.NewTimeRange(start, end)
	if err != nil {
		t.Fatalf("NewTimeRange: %v", err)
	}
	return rng
}

func TestOperatingHoursCreateOverlap(t *testing.T) {
	store := &fakeHoursStore{
		CreateFn: func(ctx context.Context, oh *model.OperatingHours) error {
			return repository.ErrConflict
		},
	}
	svc := NewOperatingHoursService(store)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), mustRange(t, day.Add(9*time.Hour), day.Add(17*time.Hour)))
	if !errors.Is(err, ErrOverlappingHours) {
		t.Fatalf("expected ErrOverlappingHours, got %v", err)
	}
}

func TestOperatingHoursCreateAssignsSpan(t *testing.T) {
	var stored *model.OperatingHours
	store := &fakeHoursStore{
		CreateFn: func(ctx context.Context, oh *model.OperatingHours) error {
			oh.ID = 42
			stored = oh
			return nil
		},
	}
	svc := NewOperatingHoursService(store)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rng := mustRange(t, day.Add(9*time.Hour), day.Add(17*time.Hour))
	oh, err := svc.Create(context.Background(), rng)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if oh.ID != 42 || stored != oh {
		t.Fatalf("created span not returned: %+v", oh)
	}
	if !oh.Range.Start.Equal(rng.Start) || !oh.Range.End.Equal(rng.End) {
		t.Fatalf("stored range %v..%v, want %v..%v", oh.Range.Start, oh.Range.End, rng.Start, rng.End)
	}
}

func TestOperatingHoursGetPropagatesNotFound(t *testing.T) {
	store := &fakeHoursStore{
		GetByIDFn: func(ctx context.Context, id uint64) (*model.OperatingHours, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewOperatingHoursService(store)

	if _, err := svc.Get(context.Background(), 7); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOperatingHoursDeletePropagatesNotFound(t *testing.T) {
	store := &fakeHoursStore{
		DeleteFn: func(ctx context.Context, id uint64) error {
			return repository.ErrNotFound
		},
	}
	svc := NewOperatingHoursService(store)

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
