package domain

import "time"

// PricingRule is a time-of-day price band for one field. StartTime and EndTime
// are "HH:MM" clocks forming a half-open interval [StartTime, EndTime); rules
// for the same field never overlap.
type PricingRule struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"field_id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contains reports whether clock ("HH:MM") falls inside [StartTime, EndTime).
// Zero-padded clocks compare correctly as strings.
func (r PricingRule) Contains(clock string) bool {
	return r.StartTime <= clock && clock < r.EndTime
}

// Overlaps is the half-open interval test used to keep rules disjoint.
func (r PricingRule) Overlaps(start, end string) bool {
	return start < r.EndTime && end > r.StartTime
}
