package service

import (
	"context"
	"errors"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/repository"
)

// OperatingHoursStore is the persistence surface the operating hours
// service needs. *repository.OperatingHoursRepo satisfies it; tests use an
// in-memory fake.
type OperatingHoursStore interface {
	Overlapping(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error)
	GetByID(ctx context.Context, id uint64) (*model.OperatingHours, error)
	Create(ctx context.Context, oh *model.OperatingHours) error
	Delete(ctx context.Context, id uint64) error
}

// OperatingHoursService owns the facility's open/closed schedule. It is a
// leaf data source for the reservation engine: availability is always
// computed inside the spans it returns.
type OperatingHoursService struct {
	store OperatingHoursStore
}

// NewOperatingHoursService constructs an OperatingHoursService over the
// given store.
func NewOperatingHoursService(store OperatingHoursStore) *OperatingHoursService {
	if store == nil {
		panic("nil store passed to NewOperatingHoursService")
	}
	return &OperatingHoursService{store: store}
}

// Schedule returns the open spans overlapping the given range, ordered by
// start time.
func (s *OperatingHoursService) Schedule(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error) {
	return s.store.Overlapping(ctx, rng)
}

// Get loads a single open span by ID. Repository ErrNotFound propagates
// unchanged for the API layer to answer 404.
func (s *OperatingHoursService) Get(ctx context.Context, id uint64) (*model.OperatingHours, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists a new open span. It fails with ErrOverlappingHours when
// the span would overlap an existing record.
func (s *OperatingHoursService) Create(ctx context.Context, rng model.TimeRange) (*model.OperatingHours, error) {
	oh := &model.OperatingHours{Range: rng}
	if err := s.store.Create(ctx, oh); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrOverlappingHours
		}
		return nil, err
	}
	return oh, nil
}

// Delete removes an open span by ID. Repository ErrNotFound propagates
// unchanged for the API layer to answer 404.
func (s *OperatingHoursService) Delete(ctx context.Context, id uint64) error {
	return s.store.Delete(ctx, id)
}
