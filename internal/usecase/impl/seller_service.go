package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	txManager    repository.TransactionManager
	sellerRepo   repository.SellerRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// SellerServiceParams holds dependencies for SellerService, injected by Fx.
type SellerServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SellerRepo   repository.SellerRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(params SellerServiceParams) usecase.SellerUsecase {
	return &sellerService{
		txManager:    params.TxManager,
		sellerRepo:   params.SellerRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sellerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterSeller orchestrates the complete seller registration process.
func (srv *sellerService) RegisterSeller(ctx context.Context, input *usecase.RegisterSellerInput) (*usecase.RegisterSellerOutput, error) {
	srv.log(ctx).Info("Starting seller registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newSeller := &entity.Seller{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Phone:        input.Phone,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Zip:          input.Zip,
		Country:      input.Country,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		_, findErr := sellerRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrSellerNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		return sellerRepo.Create(ctx, newSeller)
	})
	if err != nil {
		srv.log(ctx).Warn("Seller registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Seller registration completed", slog.Any("sellerID", newSeller.ID))

	return &usecase.RegisterSellerOutput{Seller: newSeller}, nil
}

// Login orchestrates the seller login process.
func (srv *sellerService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SellerLoginOutput, error) {
	srv.log(ctx).Debug("Starting seller login", slog.String("email", input.Email))

	seller, err := srv.sellerRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller by email")
	}

	if !srv.hasher.Check(input.Password, seller.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(seller.ID, seller.Email, seller.Name, entity.ScopeSeller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.sellerRepo.UpdateRefreshTokenHash(ctx, seller.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token hash")
	}

	srv.log(ctx).Debug("Seller logged in successfully", slog.Any("sellerID", seller.ID))

	return &usecase.SellerLoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Seller:       seller,
	}, nil
}

// RefreshToken rotates the token pair when the presented refresh token
// matches the stored one.
func (srv *sellerService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh seller tokens")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil || claims.Scope != entity.ScopeSeller {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	sellerID, err := claims.AccountID()
	if err != nil {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	seller, err := srv.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	if seller.RefreshTokenHash == "" || seller.RefreshTokenHash != srv.tokenService.HashToken(input.RefreshToken) {
		srv.log(ctx).Warn("Presented refresh token does not match stored token", slog.Any("sellerID", seller.ID))

		return nil, domainerrors.ErrInvalidRefreshToken
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(seller.ID, seller.Email, seller.Name, entity.ScopeSeller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.sellerRepo.UpdateRefreshTokenHash(ctx, seller.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token hash")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout invalidates the seller's session by clearing the stored refresh hash.
func (srv *sellerService) Logout(ctx context.Context, sellerID uuid.UUID) error {
	srv.log(ctx).Info("Logging out seller", slog.Any("sellerID", sellerID))

	if err := srv.sellerRepo.UpdateRefreshTokenHash(ctx, sellerID, ""); err != nil {
		return errors.Wrap(err, "failed to clear refresh token hash")
	}

	return nil
}

// GetSeller loads a seller by id.
func (srv *sellerService) GetSeller(ctx context.Context, sellerID uuid.UUID) (*entity.Seller, error) {
	seller, err := srv.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller by id")
	}

	return seller, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (srv *sellerService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing seller password", slog.Any("sellerID", input.AccountID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		seller, err := sellerRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerNotFound) {
				return domainerrors.ErrSellerNotFound
			}

			return errors.Wrap(err, "failed to find seller by id")
		}

		if !srv.hasher.Check(input.OldPassword, seller.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}
		if input.OldPassword == input.NewPassword {
			return domainerrors.ErrSamePassword
		}

		hashed, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		seller.PasswordHash = hashed

		return sellerRepo.Update(ctx, seller)
	})
}

// UpdateAccount replaces the seller's name and email.
func (srv *sellerService) UpdateAccount(ctx context.Context, input *usecase.UpdateSellerAccountInput) (*entity.Seller, error) {
	srv.log(ctx).Info("Updating seller account", slog.Any("sellerID", input.SellerID))

	var updated *entity.Seller
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		seller, err := sellerRepo.FindByID(ctx, input.SellerID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerNotFound) {
				return domainerrors.ErrSellerNotFound
			}

			return errors.Wrap(err, "failed to find seller by id")
		}

		seller.Name = input.Name
		seller.Email = input.Email

		if err := sellerRepo.Update(ctx, seller); err != nil {
			return err
		}

		updated = seller

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
