package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for buyer-account handlers.
type UserHandler struct {
	uc       usecase.UserUsecase
	orderUC  usecase.OrderUsecase
	tokenSvc service.TokenService
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, orderUC usecase.OrderUsecase, tokenSvc service.TokenService) *UserHandler {
	return &UserHandler{
		uc:       uc,
		orderUC:  orderUC,
		tokenSvc: tokenSvc,
	}
}

type signupUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup handles the user registration request.
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewUser(output.User), "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginUserResponse struct {
	User         *response.User `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// Login handles the user login request. The issued tokens are both
// returned in the body and set as httponly cookies.
func (h *UserHandler) Login(c echo.Context) error {
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

	return response.Success(c, http.StatusOK, loginUserResponse{
		User:         response.NewUser(output.User),
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Login successful")
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token. The token is read from the
// refreshToken cookie first, falling back to the request body.
func (h *UserHandler) RefreshToken(c echo.Context) error {
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
func (h *UserHandler) Logout(c echo.Context) error {
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

// CurrentUser returns the authenticated user's account.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	user, ok := c.Get(middleware.ContextKeyUser).(*entity.User)
	if !ok {
		return response.Unauthorized(c, "Invalid access token")
	}

	return response.Success(c, http.StatusOK, response.NewUser(user), "Current user retrieved successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword rotates the account password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
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

type updateAccountRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateAccount updates the account's name and email.
func (h *UserHandler) UpdateAccount(c echo.Context) error {
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

	user, err := h.uc.UpdateAccount(c.Request().Context(), &usecase.UpdateUserAccountInput{
		UserID: accountID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewUser(user), "Account updated successfully")
}

// PurchaseHistory returns the user's purchase records, newest first.
func (h *UserHandler) PurchaseHistory(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	records, err := h.orderUC.GetPurchaseHistory(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewPurchaseRecords(records), "Purchase history retrieved successfully")
}

type buyProductRequest struct {
	ProductID     string `json:"productId" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// BuyProduct runs the purchase workflow for the authenticated user.
func (h *UserHandler) BuyProduct(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	var req buyProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid purchase input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.BindingError(c, "Invalid product id")
	}

	output, err := h.orderUC.BuyProduct(c.Request().Context(), &usecase.BuyProductInput{
		UserID:        accountID,
		ProductID:     productID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.Purchase{
		Order:          response.NewOrder(output.Order),
		OrderDetail:    response.NewOrderDetail(output.OrderDetail),
		PurchaseRecord: response.NewPurchaseRecord(output.PurchaseRecord),
		Payment:        response.NewPayment(output.Payment),
	}, "Purchase completed successfully")
}

// refreshTokenFromRequest reads the refresh token from the cookie or,
// when absent, from the JSON body.
func refreshTokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}

	return req.RefreshToken
}
