// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names shared by login, refresh and logout.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// setAuthCookies stores the issued token pair as httponly cookies so
// browser clients never handle the raw tokens in script.
func setAuthCookies(c echo.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	setTokenCookie(c, accessTokenCookie, accessToken, accessTTL)
	setTokenCookie(c, refreshTokenCookie, refreshToken, refreshTTL)
}

// clearAuthCookies expires both token cookies.
func clearAuthCookies(c echo.Context) {
	expireTokenCookie(c, accessTokenCookie)
	expireTokenCookie(c, refreshTokenCookie)
}

func setTokenCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func expireTokenCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
