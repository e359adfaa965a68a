package product

import "time"

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows List results; nil fields are ignored.
type Filter struct {
	Q        *string
	MinPrice *float64
	MaxPrice *float64
}

type CreateParams struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	CategoryID  *int64
}

type UpdateParams struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	CategoryID  *int64
}
