package order

import "time"

type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
)

// ItemStatus is the post-sale state of a single order line.
type ItemStatus string

const (
	ItemStatusPending         ItemStatus = "PENDING"
	ItemStatusShipped         ItemStatus = "SHIPPED"
	ItemStatusReceived        ItemStatus = "RECEIVED"
	ItemStatusReturnRequested ItemStatus = "RETURN_REQUESTED"
)

// Transition legality lives here, not at the call sites.
var (
	receivableFrom = map[ItemStatus]bool{
		ItemStatusPending: true,
		ItemStatusShipped: true,
	}
	returnableFrom = map[ItemStatus]bool{
		ItemStatusPending:  true,
		ItemStatusShipped:  true,
		ItemStatusReceived: true,
	}
)

func (s ItemStatus) CanMarkReceived() bool { return receivableFrom[s] }

func (s ItemStatus) CanRequestReturn() bool { return returnableFrom[s] }

type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress *string     `json:"shipping_address,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"order_id"`
	ProductID    int64      `json:"product_id"`
	ProductName  string     `json:"product_name"`
	Quantity     int        `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
	Subtotal     float64    `json:"subtotal"`
	Status       ItemStatus `json:"status"`
	ReturnReason *string    `json:"return_reason,omitempty"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
}

// OrderWithUser is the staff listing row, joined with the owner.
type OrderWithUser struct {
	Order
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// ItemInput is one requested line as submitted by the caller.
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Line is a grouped request line: one per distinct product.
type Line struct {
	ProductID int64
	Quantity  int
}
