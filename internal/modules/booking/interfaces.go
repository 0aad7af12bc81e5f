package booking

import (
	"context"
	"time"

	"fieldbook/internal/domain"
)

type BookingRepository interface {
	CreateWithSlots(ctx context.Context, b *domain.Booking, slotIDs []int64, notes string) error
	CancelWithSlots(ctx context.Context, bookingID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
}

type SlotRepository interface {
	FindAvailableInWindow(ctx context.Context, fieldIDs []int64, date time.Time, start, end string) ([]domain.Slot, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Slot, error)
}

type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	Find(ctx context.Context, facilityID, categoryID *int64) ([]domain.Field, error)
}

type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type OrderRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Order, error)
}
