package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
)

// SortDirection orders listing results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ProductFilter narrows and pages product listings. Offset/Limit are
// final values; callers are responsible for clamping page arithmetic.
type ProductFilter struct {
	// NameQuery, when non-empty, keeps products whose name contains the
	// substring (case-insensitive).
	NameQuery string

	// SellerID, when non-nil, keeps products owned by the seller.
	SellerID *uuid.UUID

	// SortBy is a whitelisted column name; empty means insertion order.
	SortBy        string
	SortDirection SortDirection

	Offset int
	Limit  int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByName retrieves a single product by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Product, error)

	// List returns products matching the filter.
	List(ctx context.Context, filter *ProductFilter) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a single category by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error
}
