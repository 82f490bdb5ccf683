package models

import "time"

// OrderStatus represents the current status of an order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// PaymentMethod selects how a checkout is settled. Cash on delivery
// bypasses the mock payment step entirely.
type PaymentMethod string

const (
	PaymentMock           PaymentMethod = "mock"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

// Order is created exactly once per checkout attempt. Items are a
// snapshot of the cart lines at creation time; after creation only the
// status transitions.
type Order struct {
	ID        int         `json:"order_id"`
	Items     []CartLine  `json:"items"`
	Address   string      `json:"address"`
	Subtotal  int         `json:"subtotal"`
	Total     int         `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PaymentResult is the outcome of a successful mock payment
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"txn_id"`
}
