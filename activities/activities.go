// Package activities implements the simulated backend: every call
// returns canned data after an artificial delay so the caller can show
// a loading affordance. Expected failures are typed application errors
// so workflows can branch on the failure taxonomy.
package activities

import (
	"context"
	"time"
)

// Application error types attached to temporal.ApplicationError values
const (
	ErrTypeInvalidCredentials  = "InvalidCredentials"
	ErrTypeOrderCreationFailed = "OrderCreationFailed"
	ErrTypePaymentFailed       = "PaymentFailed"
	ErrTypeOrderNotFound       = "OrderNotFound"
)

// simulateLatency blocks for the configured artificial delay. The delay
// always resolves unless the activity context is cancelled first.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
