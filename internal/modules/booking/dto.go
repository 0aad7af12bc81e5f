package booking

import "fieldbook/internal/domain"

// CreateBookingRequest selects slots either by an explicit field id or by a
// facility/category filter. Identity is a customer id XOR guest name+phone.
type CreateBookingRequest struct {
	FieldID    *int64 `json:"field_id,omitempty"`
	FacilityID *int64 `json:"facility_id,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`

	Date      string `json:"date" binding:"required,dateonly"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`

	CustomerID *int64 `json:"customer_id,omitempty"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`

	Notes      string  `json:"notes,omitempty"`
	ServiceIDs []int64 `json:"service_ids,omitempty"`
	DiscountID *int64  `json:"discount_id,omitempty"`
}

// BookingDetails is the enriched view returned after creation and on lookup.
type BookingDetails struct {
	Booking *domain.Booking `json:"booking"`

	FieldName    string `json:"field_name"`
	FacilityID   int64  `json:"facility_id"`
	FacilityName string `json:"facility_name"`

	CustomerName string `json:"customer_name,omitempty"`
	GuestName    string `json:"guest_name,omitempty"`
	GuestPhone   string `json:"guest_phone,omitempty"`

	Slots []domain.Slot `json:"slots"`
	Order *domain.Order `json:"order,omitempty"`

	TotalPrice float64 `json:"total_price"`
}
