package payment

import (
	"time"

	"fieldbook/internal/modules/booking"
)

// CheckoutRequest is the tentative booking staged before payment.
type CheckoutRequest struct {
	booking.CreateBookingRequest
}

type CheckoutResponse struct {
	TxnRef        string  `json:"txn_ref"`
	PaymentURL    string  `json:"payment_url"`
	TotalAmount   float64 `json:"total_amount"`
	DepositAmount float64 `json:"deposit_amount"`
}

// Draft is the pending booking payload staged between checkout and the
// gateway callback, keyed by the generated order reference.
type Draft struct {
	TxnRef        string                       `json:"txn_ref"`
	Request       booking.CreateBookingRequest `json:"request"`
	FacilityID    int64                        `json:"facility_id"`
	FieldID       int64                        `json:"field_id"`
	TotalAmount   float64                      `json:"total_amount"`
	DepositAmount float64                      `json:"deposit_amount"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// ReturnResult tells the handler where to send the browser after the
// gateway callback has been processed.
type ReturnResult struct {
	RedirectURL string
	BookingID   int64
}
