package payment

import (
	"context"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/modules/booking"
)

// DraftStore holds pending booking drafts between checkout and the gateway
// callback. Consume is get-and-delete: the first successful callback wins,
// replays find nothing.
type DraftStore interface {
	Put(ctx context.Context, draft *Draft, ttl time.Duration) error
	Consume(ctx context.Context, txnRef string) (*Draft, error)
}

// BookingCreator is the transaction coordinator invoked once the payment
// signal checks out.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*booking.BookingDetails, error)
}

type BookingPaymentWriter interface {
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
}

type OrderRepository interface {
	CreateWithFields(ctx context.Context, o *domain.Order, items []domain.OrderField) error
}

type SlotRepository interface {
	FindAvailableInWindow(ctx context.Context, fieldIDs []int64, date time.Time, start, end string) ([]domain.Slot, error)
}

type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	Find(ctx context.Context, facilityID, categoryID *int64) ([]domain.Field, error)
}
