// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateUserAccountInput defines the mutable account fields.
type UpdateUserAccountInput struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// --- Output DTOs ---

// RegisterUserOutput returns the newly created user's basic information.
type RegisterUserOutput struct {
	User *entity.User
}

// UserLoginOutput returns the generated tokens after a successful login.
type UserLoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// TokenPairOutput returns a freshly rotated token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterUserOutput, error)
	Login(ctx context.Context, input *LoginInput) (*UserLoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*TokenPairOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	UpdateAccount(ctx context.Context, input *UpdateUserAccountInput) (*entity.User, error)
}
