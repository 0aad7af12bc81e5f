package domain

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// Slot is a fixed-duration bookable time unit for one field on one date,
// uniquely identified by (FieldID, Date, StartTime, EndTime). A slot is
// booked iff BookingID is set.
type Slot struct {
	ID        int64      `json:"id"`
	FieldID   int64      `json:"field_id"`
	Date      time.Time  `json:"date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Price     float64    `json:"price"`
	Status    SlotStatus `json:"status"`
	BookingID *int64     `json:"booking_id,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// EndsAt anchors the slot's end clock on its date.
func (s Slot) EndsAt() time.Time {
	var hh, mm int
	if len(s.EndTime) == 5 {
		hh = int(s.EndTime[0]-'0')*10 + int(s.EndTime[1]-'0')
		mm = int(s.EndTime[3]-'0')*10 + int(s.EndTime[4]-'0')
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), hh, mm, 0, 0, s.Date.Location())
}
