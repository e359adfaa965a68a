package cart

import "time"

type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	// Joined product info for listings.
	ProductName  string  `json:"product_name,omitempty"`
	UnitPrice    float64 `json:"unit_price,omitempty"`
	ProductStock int     `json:"product_stock,omitempty"`
}

type AddToCartParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}
