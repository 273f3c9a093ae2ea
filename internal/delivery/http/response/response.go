// Package response defines the unified API envelope. Every endpoint
// returns the same shape so clients can branch on the success flag
// without inspecting status codes first.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Body is the success envelope.
type Body struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorBody is the failure envelope. Data is always null and Errors is
// always present, empty when there is nothing beyond the message.
type ErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Success writes a successful response.
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Body{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error writes a failure response.
func Error(c echo.Context, statusCode int, message string, errs ...string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if errs == nil {
		errs = []string{}
	}

	return c.JSON(statusCode, ErrorBody{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// BindingError reports a malformed request body or parameter.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message)
}
