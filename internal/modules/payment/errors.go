package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrDraftNotFound    = errors.New("booking data not found")
	ErrNoSlots          = errors.New("no available slots for the requested time")
)
