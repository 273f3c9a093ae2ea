// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a buyer account. It carries its own credential material:
// a bcrypt password hash and the SHA-256 hash of the single currently
// active refresh token (empty when logged out).
type User struct {
	ID               uuid.UUID // The unique identifier for the user.
	Name             string    // The user's display name.
	Email            string    // Login identifier, unique across users.
	PasswordHash     string    // bcrypt hash of the password; never the plaintext.
	RefreshTokenHash string    // SHA-256 hex of the active refresh token, "" when none.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PurchaseRecord is a denormalized record of a completed buy, kept
// separate from Order/OrderDetail so purchase history survives order
// lifecycle changes.
type PurchaseRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	TotalAmount float64
	CreatedAt   time.Time
}
