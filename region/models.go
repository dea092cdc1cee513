package region

import "time"

// Region is an administrative delivery zone.
type Region struct {
	ID        string    `json:"id"`
	Nom       string    `json:"nom"`
	CreatedAt time.Time `json:"created_at"`
}

// Address belongs to a user and points into a region.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RegionID  string    `json:"region_id"`
	Ligne     string    `json:"ligne"`
	Ville     string    `json:"ville"`
	CreatedAt time.Time `json:"created_at"`
}
