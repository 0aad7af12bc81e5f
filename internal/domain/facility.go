package domain

import "time"

// Facility is a physical venue containing one or more fields. OpenTime and
// CloseTime ("HH:MM", 24h) bound every generated slot and pricing rule.
type Facility struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
