// Package payment implements the PaymentGateway domain service against a
// Stripe-compatible HTTP API.
package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// httpGateway talks to the payment provider over its form-encoded REST API.
type httpGateway struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
	logger     *slog.Logger
}

// intentResponse is the subset of the provider's payment-intent object we use.
type intentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewHTTPGateway creates a payment gateway client from configuration.
func NewHTTPGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.Payment == nil || cfg.Payment.BaseURL == "" {
		return nil, errors.New("payment gateway base url must be provided")
	}
	timeout := cfg.Payment.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	currency := cfg.Payment.Currency
	if currency == "" {
		currency = "usd"
	}
	return &httpGateway{
		baseURL:   strings.TrimRight(cfg.Payment.BaseURL, "/"),
		secretKey: cfg.Payment.SecretKey,
		currency:  currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Charge creates a payment intent with immediate confirmation. The order ID
// is sent as the idempotency key, so retrying the same order never results
// in a second charge.
func (g *httpGateway) Charge(ctx context.Context, input service.ChargeInput) (*service.Charge, error) {
	currency := input.Currency
	if currency == "" {
		currency = g.currency
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(input.Amount), 10))
	form.Set("currency", currency)
	form.Set("payment_method", input.PaymentMethod)
	form.Set("confirm", "true")
	form.Set("metadata[order_id]", input.OrderID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Idempotency-Key", input.OrderID.String())

	g.logger.Info("[Payment] Creating payment intent",
		slog.String("order_id", input.OrderID.String()),
		slog.Float64("amount", input.Amount),
		slog.String("currency", currency),
	)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ErrPaymentFailed.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var intent intentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, domainerrors.ErrPaymentFailed.WrapMessage("malformed gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "payment was declined"
		if intent.Error != nil && intent.Error.Message != "" {
			msg = intent.Error.Message
		}
		g.logger.Warn("[Payment] Charge failed",
			slog.String("order_id", input.OrderID.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg),
		)
		return nil, domainerrors.ErrPaymentFailed.WrapMessage(msg)
	}

	if intent.Status != "succeeded" {
		return nil, domainerrors.ErrPaymentFailed.WrapMessage("payment not completed: " + intent.Status)
	}

	g.logger.Info("[Payment] Charge succeeded",
		slog.String("order_id", input.OrderID.String()),
		slog.String("provider_id", intent.ID),
	)

	return &service.Charge{
		ProviderID: intent.ID,
		Status:     intent.Status,
	}, nil
}

// toMinorUnits converts a decimal amount to the integer minor units the
// provider expects, rounding to avoid float drift.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
