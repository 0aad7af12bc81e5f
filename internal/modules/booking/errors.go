package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrSlotConflict    = errors.New("slot already booked for this time")
	ErrNotFound        = errors.New("booking not found")
	ErrBookingDisabled = errors.New("field is not open for booking")
	ErrCancelWindow    = errors.New("cannot cancel within 2 hours of the booking's end")
)
