package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a product.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int // 1 through 5 inclusive.
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingValid reports whether the rating is within the accepted range.
func (r *Review) RatingValid() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
