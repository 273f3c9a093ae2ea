package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle. An order is
// created "pending" and only moves to "processing" after the payment
// charge succeeds.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	return slices.Contains([]OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}, s)
}

// Order is a single-product purchase. TotalAmount always equals the
// product's unit price multiplied by the purchased quantity; there is
// no multi-item cart model.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderDetail is the purchase line of an order, one row per buy.
type OrderDetail struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
	SubTotal  float64
	CreatedAt time.Time
}
