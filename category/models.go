package category

import "time"

// Category is a flat product category managed by administrators.
type Category struct {
	ID          string    `json:"id"`
	Nom         string    `json:"nom"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
