// Package stripepay implements the checkout provider port on Stripe Checkout.
//
// The order id and client id are stamped into the session metadata; the
// webhook handler uses them to correlate provider events back to orders, so
// no provider identifiers need to be stored on the order row.
package stripepay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// MetadataOrderID is the session metadata key carrying the order id.
const MetadataOrderID = "order_id"

// MetadataClientID is the session metadata key carrying the client id.
const MetadataClientID = "client_id"

type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Config configures the Stripe checkout provider.
type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Currency   string
}

// Provider implements ports.CheckoutProvider using Stripe Checkout sessions.
type Provider struct {
	sessions   sessionAPI
	successURL string
	cancelURL  string
	currency   string
}

// NewProvider constructs a Stripe checkout provider from the configuration.
func NewProvider(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	if cfg.SuccessURL == "" || cfg.CancelURL == "" {
		return nil, errors.New("stripe: success and cancel URLs are required")
	}

	currency := cfg.Currency
	if currency == "" {
		currency = "eur"
	}

	sc := client.New(cfg.SecretKey, nil)
	return &Provider{
		sessions:   sc.CheckoutSessions,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		currency:   strings.ToLower(currency),
	}, nil
}

// newProviderWithSessions is the test seam for injecting a fake session API.
func newProviderWithSessions(sessions sessionAPI, successURL, cancelURL, currency string) *Provider {
	return &Provider{
		sessions:   sessions,
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   currency,
	}
}

// CreateCheckoutSession creates a Stripe Checkout session for the order's
// current total.
func (p *Provider) CreateCheckoutSession(
	ctx context.Context,
	orderID, clientID kernel.UUID,
	serviceType order.ServiceType,
	amount kernel.Money,
) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.currency),
					UnitAmount: stripe.Int64(amount.Cents()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Pressing %s", serviceType)),
					},
				},
			},
		},
		Metadata: map[string]string{
			MetadataOrderID:  orderID.String(),
			MetadataClientID: clientID.String(),
		},
	}
	params.Context = ctx

	session, err := p.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	return &ports.CheckoutSession{
		SessionID:  session.ID,
		PaymentURL: session.URL,
	}, nil
}
