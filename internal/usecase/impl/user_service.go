// Package impl contains the implementation of the application's business logic.
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete user registration process.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterUserOutput, error) {
	srv.log(ctx).Info("Starting user registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("User registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterUserOutput{User: newUser}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.UserLoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Email, user.Name, entity.ScopeUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// A single active refresh token per account: storing the new hash
	// invalidates any previously issued refresh token.
	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, user.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token hash")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.UserLoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken rotates the token pair when the presented refresh token
// matches the stored one. The previous refresh token becomes unusable.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh user tokens")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil || claims.Scope != entity.ScopeUser {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	userID, err := claims.AccountID()
	if err != nil {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenHash != srv.tokenService.HashToken(input.RefreshToken) {
		srv.log(ctx).Warn("Presented refresh token does not match stored token", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidRefreshToken
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Email, user.Name, entity.ScopeUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, user.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token hash")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout invalidates the user's session by clearing the stored refresh hash.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Logging out user", slog.Any("userID", userID))

	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		return errors.Wrap(err, "failed to clear refresh token hash")
	}

	return nil
}

// GetUser loads a user by id.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing user password", slog.Any("userID", input.AccountID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}
		if input.OldPassword == input.NewPassword {
			return domainerrors.ErrSamePassword
		}

		hashed, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		user.PasswordHash = hashed

		return userRepo.Update(ctx, user)
	})
}

// UpdateAccount replaces the user's name and email.
func (srv *userService) UpdateAccount(ctx context.Context, input *usecase.UpdateUserAccountInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user account", slog.Any("userID", input.UserID))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		user.Name = input.Name
		user.Email = input.Email

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
