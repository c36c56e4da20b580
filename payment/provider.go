package payment

import (
	"context"
	"errors"
)

// ErrProviderUnavailable means the payment gateway could not be reached or
// is not configured. The checkout flow treats this as a non-fatal
// degradation, not a payment failure.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// Request describes a payment to collect. Amount is in minor currency units.
type Request struct {
	Amount       int64
	Currency     string
	Description  string
	CustomerName string
	// Reference ties the payment back to the checkout session that opened it.
	Reference string
}

// Callbacks receive the asynchronous outcome of a payment: the provider
// confirms, rejects with a reason, or the customer dismisses the dialog.
type Callbacks struct {
	OnSuccess func(providerRef string)
	OnFailure func(reason string)
	OnDismiss func()
}

// Provider opens a payment with the external gateway and registers the
// callbacks to be resolved later (webhook or explicit dismissal). It returns
// the provider's reference for the in-flight payment.
type Provider interface {
	Open(ctx context.Context, req Request, cb Callbacks) (string, error)
}
