package domain

import "time"

// CartItem is a product augmented with a quantity counter. The embedded product
// flattens into the same JSON object as the quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// OrderStatus tracks fulfilment.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a snapshot of cart contents taken at checkout. Items keep the price and
// details they had at purchase time; they are not re-resolved against the catalogue.
type Order struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	Items  []CartItem  `json:"items"`
	Total  float64     `json:"total"`
	Date   time.Time   `json:"date"`
	Status OrderStatus `json:"status"`
}

// Snapshot groups every persisted collection plus the current user.
type Snapshot struct {
	CurrentUser *User
	News        []NewsArticle
	Scores      []MatchScore
	Products    []Product
	Orders      []Order
	Users       []User
}
