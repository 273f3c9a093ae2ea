package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ImageUpload carries an uploaded product image into the use case layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ListProductsInput defines the listing query. Page and Limit are raw
// client values; the use case clamps them.
type ListProductsInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
}

// CreateProductInput defines the data required to publish a product.
type CreateProductInput struct {
	SellerID     uuid.UUID
	Name         string
	Description  string
	Price        float64
	Quantity     int
	CategoryName string
	Image        *ImageUpload
}

// UpdateProductInput defines the data required to replace a product's fields.
type UpdateProductInput struct {
	SellerID     uuid.UUID
	ProductID    uuid.UUID
	Name         string
	Description  string
	Price        float64
	Quantity     int
	CategoryName string
	Image        *ImageUpload
}

// AddReviewInput defines the data required to review a product.
type AddReviewInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// CatalogUsecase defines the interface for catalog business operations.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)
	AddReview(ctx context.Context, input *AddReviewInput) (*entity.Review, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
