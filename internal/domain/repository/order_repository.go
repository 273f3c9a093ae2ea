package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// Update modifies an existing order (status transitions).
	Update(ctx context.Context, order *entity.Order) error

	// CreateDetail persists the purchase line of an order.
	CreateDetail(ctx context.Context, detail *entity.OrderDetail) error

	// FindDetailsByOrderID returns the purchase lines of an order.
	FindDetailsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDetail, error)
}
