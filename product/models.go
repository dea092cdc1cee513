package product

import "time"

// Product mirrors the products table. Prices are stored in whole francs CFA.
type Product struct {
	ID          string    `json:"id"`
	GieID       string    `json:"gie_id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Nom         string    `json:"nom"`
	Description *string   `json:"description,omitempty"`
	Prix        int64     `json:"prix"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateParams contains write parameters for creating a product.
type CreateParams struct {
	GieID       string
	CategoryID  *string
	Nom         string
	Description *string
	Prix        int64
	Stock       int
	ImageURL    *string
}

// UpdateParams contains the mutable product fields.
type UpdateParams struct {
	CategoryID  *string
	Nom         string
	Description *string
	Prix        int64
	Stock       int
	ImageURL    *string
}

// Filters narrows product listings.
type Filters struct {
	GieID      string
	CategoryID string
	PrixMin    int64
	PrixMax    int64
	Page       int
	PageSize   int
}
