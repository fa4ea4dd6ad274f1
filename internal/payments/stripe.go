package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// IntentCreator is the slice of the Stripe SDK this service uses. Tests
// substitute it to count invocations; production wraps a real client.
type IntentCreator interface {
	CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeCreator struct {
	api *client.API
}

// NewStripeCreator wraps a Stripe client bound to the given secret key.
func NewStripeCreator(secretKey string) IntentCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeCreator{api: api}
}

func (c *stripeCreator) CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	params.Context = ctx
	return c.api.PaymentIntents.New(params)
}
