package domain

import "time"

// Customer is a registered account. Account management lives in the identity
// service; this table is read here only to enrich booking details.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
