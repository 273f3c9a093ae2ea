package middleware

import (
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Echo context keys under which the authenticated principal is stored.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyUser      = "currentUser"
	ContextKeySeller    = "currentSeller"
)

// accessTokenCookie is the cookie the login endpoints set.
const accessTokenCookie = "accessToken"

// AuthMiddleware validates access tokens and loads the authenticated
// account. User and seller routes use separate middlewares because the
// two account types live in separate credential stores.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUC   usecase.UserUsecase
	sellerUC usecase.SellerUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userUC usecase.UserUsecase, sellerUC usecase.SellerUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userUC: userUC, sellerUC: sellerUC}
}

// AuthenticateUser validates the access token with user scope and
// attaches the user to the request context. Any failure is a 401.
func (m *AuthMiddleware) AuthenticateUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.authenticate(c, entity.ScopeUser)
		if err != nil {
			return err
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return errors.WithStack(domainerrors.ErrInvalidAccessToken)
		}

		user, err := m.userUC.GetUser(c.Request().Context(), accountID)
		if err != nil {
			return errors.WithStack(domainerrors.ErrInvalidAccessToken)
		}

		c.Set(ContextKeyAccountID, accountID)
		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// AuthenticateSeller validates the access token with seller scope and
// attaches the seller to the request context.
func (m *AuthMiddleware) AuthenticateSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.authenticate(c, entity.ScopeSeller)
		if err != nil {
			return err
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return errors.WithStack(domainerrors.ErrInvalidAccessToken)
		}

		seller, err := m.sellerUC.GetSeller(c.Request().Context(), accountID)
		if err != nil {
			return errors.WithStack(domainerrors.ErrInvalidAccessToken)
		}

		c.Set(ContextKeyAccountID, accountID)
		c.Set(ContextKeySeller, seller)

		return next(c)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, scope entity.Scope) (*service.Claims, error) {
	tokenString := extractAccessToken(c)
	if tokenString == "" {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidAccessToken)
	}

	if claims.Scope != scope {
		return nil, errors.WithStack(domainerrors.ErrInvalidAccessToken)
	}

	return claims, nil
}

// extractAccessToken reads the token from the accessToken cookie first,
// falling back to a bearer Authorization header.
func extractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}

	return tokenString
}
