package order

import "time"

// Order mirrors the orders table. Totals are stored in whole francs CFA and
// snapshot at creation time.
type Order struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	LivreurID *string   `json:"livreur_id,omitempty"`
	AddressID *string   `json:"address_id,omitempty"`
	Status    Status    `json:"status"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is one order line; UnitPrice snapshots the product price at order time.
type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CreateParams contains write parameters for creating an order.
type CreateParams struct {
	ClientID  string
	AddressID *string
	Lines     []Line
}

// Line is a requested product and quantity.
type Line struct {
	ProductID string
	Quantity  int
}

// Filters narrows order listings.
type Filters struct {
	ClientID  string
	LivreurID string
	Status    Status
	Page      int
	PageSize  int
}
