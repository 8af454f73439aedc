package payment

import (
	"context"

	"github.com/tomiwa/invoicepay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/tomiwa/invoicepay/services/payment PaystackGW,EventsGW

// PaystackGW talks to the payment provider
type PaystackGW interface {
	// InitializeTransaction creates a hosted checkout session
	InitializeTransaction(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutSession, error)

	// VerifyTransaction fetches the charge outcome for a reference
	VerifyTransaction(ctx context.Context, reference string) (*models.ChargeData, error)

	// VerifyWebhookSignature checks the HMAC signature over the raw body in
	// constant time
	VerifyWebhookSignature(body []byte, signature string) bool
}

// EventsGW dispatches notifications after reconciliation. Fire and forget:
// a publish failure must never roll back payment state.
type EventsGW interface {
	PublishPaymentReconciled(event *models.PaymentReconciledEvent) error
	PublishPaymentFailed(event *models.PaymentFailedEvent) error
}
