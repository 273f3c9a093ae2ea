package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// BuyProductInput defines the data required to purchase a product.
type BuyProductInput struct {
	UserID        uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	PaymentMethod string
}

// BuyProductOutput composes the full result of a successful purchase.
type BuyProductOutput struct {
	Order          *entity.Order
	OrderDetail    *entity.OrderDetail
	PurchaseRecord *entity.PurchaseRecord
	Payment        *service.Charge
}

// OrderUsecase defines the interface for order business operations.
type OrderUsecase interface {
	// BuyProduct runs the full purchase workflow: pending order, payment
	// charge, then the processing transition with its detail rows.
	BuyProduct(ctx context.Context, input *BuyProductInput) (*BuyProductOutput, error)

	// GetPurchaseHistory returns the user's purchase records, newest first.
	GetPurchaseHistory(ctx context.Context, userID uuid.UUID) ([]*entity.PurchaseRecord, error)
}
