package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSellerNotFound is a domain-specific error returned when a seller is not found.
var ErrSellerNotFound = errors.New("seller not found")

// SellerRepository defines the standard operations for seller persistence.
type SellerRepository interface {
	// FindByID retrieves a single seller by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seller, error)

	// FindByEmail retrieves a single seller by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.Seller, error)

	// Create persists a new seller entity to the storage.
	Create(ctx context.Context, seller *entity.Seller) error

	// Update modifies an existing seller entity in the storage.
	Update(ctx context.Context, seller *entity.Seller) error

	// UpdateRefreshTokenHash stores the hash of the currently active
	// refresh token for the seller; an empty hash clears it.
	UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, tokenHash string) error
}
