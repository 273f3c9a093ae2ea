package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterSellerInput defines the data required to register a new seller.
type RegisterSellerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
	State    string
	Zip      string
	Country  string
}

// UpdateSellerAccountInput defines the mutable seller account fields.
type UpdateSellerAccountInput struct {
	SellerID uuid.UUID
	Name     string
	Email    string
}

// RegisterSellerOutput returns the newly created seller's basic information.
type RegisterSellerOutput struct {
	Seller *entity.Seller
}

// SellerLoginOutput returns the generated tokens after a successful login.
type SellerLoginOutput struct {
	AccessToken  string
	RefreshToken string
	Seller       *entity.Seller
}

// SellerUsecase defines the interface for seller-related business operations.
type SellerUsecase interface {
	RegisterSeller(ctx context.Context, input *RegisterSellerInput) (*RegisterSellerOutput, error)
	Login(ctx context.Context, input *LoginInput) (*SellerLoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*TokenPairOutput, error)
	Logout(ctx context.Context, sellerID uuid.UUID) error
	GetSeller(ctx context.Context, sellerID uuid.UUID) (*entity.Seller, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	UpdateAccount(ctx context.Context, input *UpdateSellerAccountInput) (*entity.Seller, error)
}
