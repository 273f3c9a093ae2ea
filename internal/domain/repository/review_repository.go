package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository defines the standard operations for product reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByProductID returns all reviews attached to a product,
	// newest first.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
