package domain

import "time"

// Order materializes the payment linkage for a finalized booking. One order
// typically follows one booking.
type Order struct {
	ID            int64         `json:"id"`
	BookingID     int64         `json:"booking_id"`
	FacilityID    int64         `json:"facility_id"`
	CustomerID    *int64        `json:"customer_id,omitempty"`
	GuestName     string        `json:"guest_name,omitempty"`
	GuestPhone    string        `json:"guest_phone,omitempty"`
	TotalAmount   float64       `json:"total_amount"`
	DepositAmount float64       `json:"deposit_amount"`
	DiscountID    *int64        `json:"discount_id,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TxnRef        string        `json:"txn_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderField links an order to a booked field.
type OrderField struct {
	ID      int64   `json:"id"`
	OrderID int64   `json:"order_id"`
	FieldID int64   `json:"field_id"`
	Price   float64 `json:"price"`
}
