package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/tomiwa/invoicepay/services/payment PaymentUC

// PaymentUC represents the payment usecase interface
type PaymentUC interface {
	// CreateCheckout asks the provider for a hosted checkout session for an
	// invoice owned by userID. Nothing is persisted locally; ledger rows are
	// created only by reconciliation.
	CreateCheckout(ctx context.Context, invoiceID string, userID uuid.UUID) (*models.CheckoutSession, error)

	// HandleWebhook authenticates and reconciles one webhook delivery.
	// rawBody must be the unparsed request body the signature was computed
	// over. Safe under arbitrary redelivery, reordering and duplication.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*models.ReconcileResult, error)

	// ConfirmCallback verifies a transaction by reference after the payer is
	// redirected back, and applies the same idempotent transition as the
	// webhook path.
	ConfirmCallback(ctx context.Context, reference string) (*models.ReconcileResult, error)
}
