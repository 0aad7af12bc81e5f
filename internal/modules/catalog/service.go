package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/repository"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context) ([]domain.Facility, error)
}

type FieldRepository interface {
	Find(ctx context.Context, facilityID, categoryID *int64) ([]domain.Field, error)
}

type SlotRepository interface {
	ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.Slot, error)
	SetBlocked(ctx context.Context, slotID int64, blocked bool) error
}

// Service is the read side of the catalog plus slot maintenance. Facility
// and field CRUD belongs to the back-office system, not this API.
type Service struct {
	facilities FacilityRepository
	fields     FieldRepository
	slots      SlotRepository
}

func NewService(facilities FacilityRepository, fields FieldRepository, slots SlotRepository) *Service {
	return &Service{facilities: facilities, fields: fields, slots: slots}
}

func (s *Service) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	return s.facilities.List(ctx)
}

func (s *Service) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	f, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load facility: %w", err)
	}
	return f, nil
}

func (s *Service) ListFields(ctx context.Context, facilityID int64, categoryID *int64) ([]domain.Field, error) {
	return s.fields.Find(ctx, &facilityID, categoryID)
}

func (s *Service) ListFieldSlots(ctx context.Context, fieldID int64, dateStr string) ([]domain.Slot, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrValidation)
	}
	return s.slots.ListByFieldAndDate(ctx, fieldID, date)
}

// BlockSlot takes a slot out of circulation for maintenance; it only works
// on available slots. UnblockSlot reverses it.
func (s *Service) BlockSlot(ctx context.Context, slotID int64) error {
	return s.slots.SetBlocked(ctx, slotID, true)
}

func (s *Service) UnblockSlot(ctx context.Context, slotID int64) error {
	return s.slots.SetBlocked(ctx, slotID, false)
}
