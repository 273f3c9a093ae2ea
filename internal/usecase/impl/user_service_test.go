package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, srv usecase.UserUsecase) *usecase.RegisterUserOutput {
	t.Helper()
	out, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	return out
}

func TestUserService_RegisterUser(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()

	out := registerTestUser(t, srv)
	assert.Equal(t, "jane@example.com", out.User.Email)
	assert.NotEmpty(t, out.User.PasswordHash)
	assert.NotEqual(t, "Secret123!", out.User.PasswordHash)
}

func TestUserService_RegisterUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	registerTestUser(t, srv)

	_, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "Other",
		Email:    "jane@example.com",
		Password: "Another123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	registerTestUser(t, srv)
	ctx := context.Background()

	out, err := srv.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "jane@example.com", out.User.Email)

	// Access token carries the user scope and identity
	claims, err := env.tokenService.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)

	// The refresh hash is persisted
	stored, err := env.userRepo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, env.tokenService.HashToken(out.RefreshToken), stored.RefreshTokenHash)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	registerTestUser(t, srv)

	_, err := srv.Login(context.Background(), &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "WrongPassword",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()

	_, err := srv.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Secret123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_RefreshToken_Rotation(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	registerTestUser(t, srv)
	ctx := context.Background()

	login, err := srv.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	rotated, err := srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)

	// The previous refresh token is unusable after rotation
	_, err = srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)

	// The rotated token still works
	_, err = srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestUserService_RefreshToken_Garbage(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()

	_, err := srv.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)
}

func TestUserService_Logout(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	out := registerTestUser(t, srv)
	ctx := context.Background()

	login, err := srv.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	require.NoError(t, srv.Logout(ctx, out.User.ID))

	stored, err := env.userRepo.FindByID(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshTokenHash)

	// The old refresh token fails after logout
	_, err = srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	out := registerTestUser(t, srv)
	ctx := context.Background()

	// Wrong old password
	err := srv.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:   out.User.ID,
		OldPassword: "Wrong",
		NewPassword: "NewSecret456!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Same password rejected
	err = srv.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:   out.User.ID,
		OldPassword: "Secret123!",
		NewPassword: "Secret123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrSamePassword)

	// Successful change
	require.NoError(t, srv.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:   out.User.ID,
		OldPassword: "Secret123!",
		NewPassword: "NewSecret456!",
	}))

	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "jane@example.com", Password: "Secret123!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "jane@example.com", Password: "NewSecret456!"})
	assert.NoError(t, err)
}

func TestUserService_UpdateAccount(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newUserService()
	out := registerTestUser(t, srv)
	ctx := context.Background()

	updated, err := srv.UpdateAccount(ctx, &usecase.UpdateUserAccountInput{
		UserID: out.User.ID,
		Name:   "Jane Smith",
		Email:  "jane.smith@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "jane.smith@example.com", updated.Email)

	// Email conflict with another account
	_, err = srv.RegisterUser(ctx, &usecase.RegisterUserInput{
		Name:     "Other",
		Email:    "other@example.com",
		Password: "Other123!",
	})
	require.NoError(t, err)

	_, err = srv.UpdateAccount(ctx, &usecase.UpdateUserAccountInput{
		UserID: out.User.ID,
		Name:   "Jane",
		Email:  "other@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestSellerService_RegisterLoginRefresh(t *testing.T) {
	env := newTestEnv(t)
	srv := env.newSellerService()
	ctx := context.Background()

	out, err := srv.RegisterSeller(ctx, &usecase.RegisterSellerInput{
		Name:     "Acme",
		Email:    "acme@example.com",
		Password: "Seller123!",
		City:     "Springfield",
		Country:  "US",
	})
	require.NoError(t, err)
	assert.Equal(t, "Springfield", out.Seller.City)

	login, err := srv.Login(ctx, &usecase.LoginInput{
		Email:    "acme@example.com",
		Password: "Seller123!",
	})
	require.NoError(t, err)

	rotated, err := srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	_, err = srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)

	_, err = srv.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestSellerService_UserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	users := env.newUserService()
	sellers := env.newSellerService()
	ctx := context.Background()

	registerTestUser(t, users)
	login, err := users.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	// A user refresh token must not refresh a seller session
	_, err = sellers.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)
}
