package service

import (
	"context"

	"github.com/google/uuid"
)

// ChargeInput carries everything the gateway needs to attempt a charge.
type ChargeInput struct {
	// OrderID doubles as the idempotency key so retrying a failed
	// checkout never double-charges the customer.
	OrderID       uuid.UUID
	Amount        float64
	Currency      string
	PaymentMethod string
}

// Charge is the gateway's record of a completed payment attempt.
type Charge struct {
	ProviderID string
	Status     string
}

// PaymentGateway abstracts the external payment provider from the use cases.
type PaymentGateway interface {
	// Charge attempts to collect the given amount. A non-nil error means
	// the payment did not go through and the order must stay pending.
	Charge(ctx context.Context, input ChargeInput) (*Charge, error)
}
