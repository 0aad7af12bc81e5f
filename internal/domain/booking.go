package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Booking reserves one or more slots on a field. It belongs to either a
// registered customer (CustomerID) or a guest (GuestName + GuestPhone);
// the repository enforces that exactly one of the two is stored.
type Booking struct {
	ID            int64         `json:"id"`
	FieldID       int64         `json:"field_id"`
	CustomerID    *int64        `json:"customer_id,omitempty"`
	GuestName     string        `json:"guest_name,omitempty"`
	GuestPhone    string        `json:"guest_phone,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// IsGuest reports whether the booking was made without a customer account.
func (b Booking) IsGuest() bool { return b.CustomerID == nil }
