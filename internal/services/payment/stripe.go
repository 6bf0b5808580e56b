package payment

import (
	"os"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/webhook"
)

// stripeCheckout is the production CheckoutClient backed by the Stripe API.
type stripeCheckout struct{}

// NewStripeCheckout configures the Stripe key from the environment and
// returns the live checkout client.
func NewStripeCheckout() CheckoutClient {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &stripeCheckout{}
}

func (c *stripeCheckout) CreateSession(req CheckoutRequest) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.ID, sess.URL, nil
}

// stripeVerifier authenticates webhook payloads with the endpoint secret.
type stripeVerifier struct {
	secret string
}

// NewStripeVerifier reads the webhook signing secret from the environment.
func NewStripeVerifier() EventVerifier {
	return &stripeVerifier{secret: os.Getenv("STRIPE_WEBHOOK_SECRET")}
}

func (v *stripeVerifier) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, v.secret)
}
