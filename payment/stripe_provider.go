package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.uber.org/zap"
)

// StripeProvider collects electronic transfers through Stripe
// PaymentIntents. Outcomes arrive on the webhook and are dispatched through
// the shared registry.
type StripeProvider struct {
	secretKey  string
	webhookKey string
	registry   *Registry
	logger     *zap.Logger
}

func NewStripeProvider(secretKey, webhookKey string, registry *Registry, logger *zap.Logger) *StripeProvider {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &StripeProvider{
		secretKey:  secretKey,
		webhookKey: webhookKey,
		registry:   registry,
		logger:     logger,
	}
}

func (p *StripeProvider) Open(_ context.Context, req Request, cb Callbacks) (string, error) {
	if p.secretKey == "" {
		return "", ErrProviderUnavailable
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.AddMetadata("checkout_session", req.Reference)
	params.AddMetadata("customer_name", req.CustomerName)

	pi, err := paymentintent.New(params)
	if err != nil {
		// Gateway unreachable is a degradation, not a payment failure.
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	p.registry.Register(pi.ID, cb)
	p.logger.Info("Payment intent opened",
		zap.String("intent_id", pi.ID),
		zap.String("checkout_session", req.Reference),
		zap.Int64("amount", req.Amount),
	)
	return pi.ID, nil
}

// ParseWebhook verifies the Stripe signature and decodes the event.
func (p *StripeProvider) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, p.webhookKey)
}

// HandleEvent maps a webhook event onto the registered callbacks.
func (p *StripeProvider) HandleEvent(event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		p.logger.Warn("Unparseable webhook payload", zap.String("event_type", string(event.Type)), zap.Error(err))
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		p.registry.Success(pi.ID)
	case "payment_intent.payment_failed":
		reason := "payment declined"
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			reason = pi.LastPaymentError.Msg
		}
		p.registry.Failure(pi.ID, reason)
	case "payment_intent.canceled":
		p.registry.Dismiss(pi.ID)
	default:
		p.logger.Debug("Ignoring webhook event", zap.String("event_type", string(event.Type)))
	}
}
