package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Products reference categories by id;
// the API resolves them by name on product creation.
type Category struct {
	ID        uuid.UUID
	Name      string // Unique.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a single catalog listing owned by a seller.
type Product struct {
	ID          uuid.UUID
	Name        string // Unique across the catalog.
	Description string
	Price       float64
	Quantity    int    // Advertised stock. Read on purchase but never decremented.
	ImageURL    string // Public URL of the uploaded product image.
	CategoryID  uuid.UUID
	SellerID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
