package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SellerHandler holds dependencies for seller-account handlers.
type SellerHandler struct {
	uc        usecase.SellerUsecase
	catalogUC usecase.CatalogUsecase
	tokenSvc  service.TokenService
}

// NewSellerHandler is the constructor for SellerHandler, injected by Fx.
func NewSellerHandler(uc usecase.SellerUsecase, catalogUC usecase.CatalogUsecase, tokenSvc service.TokenService) *SellerHandler {
	return &SellerHandler{
		uc:        uc,
		catalogUC: catalogUC,
		tokenSvc:  tokenSvc,
	}
}

type signupSellerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// Signup handles the seller registration request.
func (h *SellerHandler) Signup(c echo.Context) error {
	var req signupSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterSeller(c.Request().Context(), &usecase.RegisterSellerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		Country:  req.Country,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewSeller(output.Seller), "Seller registered successfully")
}

type loginSellerResponse struct {
	Seller       *response.Seller `json:"seller"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

// Login handles the seller login request.
func (h *SellerHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setAuthCookies(c, output.AccessToken, output.RefreshToken,
		h.tokenSvc.GetAccessTokenDuration(), h.tokenSvc.GetRefreshTokenDuration())

	return response.Success(c, http.StatusOK, loginSellerResponse{
		Seller:       response.NewSeller(output.Seller),
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Login successful")
}

// RefreshToken rotates the seller's refresh token.
func (h *SellerHandler) RefreshToken(c echo.Context) error {
	tokenString := refreshTokenFromRequest(c)
	if tokenString == "" {
		return response.Unauthorized(c, "Refresh token is missing")
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: tokenString,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setAuthCookies(c, output.AccessToken, output.RefreshToken,
		h.tokenSvc.GetAccessTokenDuration(), h.tokenSvc.GetRefreshTokenDuration())

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Token refreshed successfully")
}

// Logout clears the stored refresh credential and expires both cookies.
func (h *SellerHandler) Logout(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), accountID); err != nil {
		return errors.WithStack(err)
	}

	clearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// CurrentSeller returns the authenticated seller's account.
func (h *SellerHandler) CurrentSeller(c echo.Context) error {
	seller, ok := c.Get(middleware.ContextKeySeller).(*entity.Seller)
	if !ok {
		return response.Unauthorized(c, "Invalid access token")
	}

	return response.Success(c, http.StatusOK, response.NewSeller(seller), "Current seller retrieved successfully")
}

// ChangePassword rotates the seller's password.
func (h *SellerHandler) ChangePassword(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		AccountID:   accountID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// UpdateAccount updates the seller's name and email.
func (h *SellerHandler) UpdateAccount(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid update account input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	seller, err := h.uc.UpdateAccount(c.Request().Context(), &usecase.UpdateSellerAccountInput{
		SellerID: accountID,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewSeller(seller), "Account updated successfully")
}

// Products returns the authenticated seller's own listings.
func (h *SellerHandler) Products(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	products, err := h.catalogUC.ListSellerProducts(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewProducts(products), "Seller products retrieved successfully")
}
