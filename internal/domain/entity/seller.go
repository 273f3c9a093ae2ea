package entity

import (
	"time"

	"github.com/google/uuid"
)

// Seller is a merchant account that owns catalog products. Sellers
// authenticate exactly like users but through their own credential
// store and token scope.
type Seller struct {
	ID               uuid.UUID
	Name             string
	Email            string // Unique across sellers.
	PasswordHash     string
	Phone            string
	Address          string
	City             string
	State            string
	Zip              string
	Country          string
	RefreshTokenHash string // SHA-256 hex of the active refresh token, "" when none.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
