package domain

import "errors"

// Error taxonomy shared by repositories, services, and handlers.
// Handlers translate these to HTTP statuses; everything else is a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

type AddToCartRequest struct {
	BookID   uint `json:"bookId" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	ShippingAddress string `json:"shippingAddress"`
}

// OrderCreatedEvent is published to Kafka after a checkout commits.
type OrderCreatedEvent struct {
	OrderID     uint    `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	UserID      uint    `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	Items       int     `json:"items"`
}
