package stock

import "time"

// Item statuses. An item is never deleted, it moves to consumed or thrown so
// the weekly stats keep their history.
const (
	StatusActive   = "active"
	StatusConsumed = "consumed"
	StatusThrown   = "thrown"
)

// Item is one product in the user's pantry.
type Item struct {
	ID         string     `json:"id"`
	Barcode    string     `json:"barcode,omitempty"`
	Name       string     `json:"name"`
	Brand      string     `json:"brand,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Category   string     `json:"category,omitempty"`
	Quantity   string     `json:"quantity,omitempty"`
	ExpiryDate string     `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	AddedAt    time.Time  `json:"added_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	ThrownAt   *time.Time `json:"thrown_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Stats summarizes the pantry for the dashboard.
type Stats struct {
	TotalItems       int `json:"total_items"`
	ExpiringSoon     int `json:"expiring_soon"`
	Expired          int `json:"expired"`
	ConsumedThisWeek int `json:"consumed_this_week"`
	ThrownThisWeek   int `json:"thrown_this_week"`
}
