package domain

import "time"

type Field struct {
	ID               int64     `json:"id"`
	FacilityID       int64     `json:"facility_id"`
	CategoryID       int64     `json:"category_id"`
	Name             string    `json:"name"`
	IsBookingEnabled bool      `json:"is_booking_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
