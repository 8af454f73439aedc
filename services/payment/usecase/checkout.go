package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tomiwa/invoicepay/internal/pkg/logger"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// fallbackEmail is sent to the provider when the invoice has no client
// email; Paystack requires one on every checkout session.
const fallbackEmail = "customer@example.com"

// CreateCheckout asks Paystack for a hosted checkout session for an invoice
// owned by userID. Nothing is written locally: the ledger records charge
// outcomes, not checkout attempts.
func (uc *PaymentUsecase) CreateCheckout(ctx context.Context, invoiceID string, userID uuid.UUID) (*models.CheckoutSession, error) {
	invoice, err := uc.invoices.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.UserID != userID {
		logger.Warn("Checkout attempted on foreign invoice",
			logger.String("invoice_id", invoiceID),
			logger.String("user_id", userID.String()))
		return nil, payment.ErrInvoiceForbidden
	}

	// Reference format keeps the invoice id visible for debugging and the
	// timestamp guarantees per-call uniqueness.
	reference := fmt.Sprintf("%s-%s", invoice.InvoiceID, time.Now().UTC().Format("20060102150405"))

	email := invoice.ClientEmail
	if email == "" {
		email = fallbackEmail
	}

	req := &models.CheckoutRequest{
		InvoiceID:   invoice.InvoiceID,
		Email:       email,
		Amount:      invoice.Amount,
		Currency:    invoice.Currency,
		Reference:   reference,
		CallbackURL: uc.cfg.Paystack.CallbackURL,
	}

	session, err := uc.paystack.InitializeTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Checkout session created",
		logger.String("invoice_id", invoice.InvoiceID),
		logger.String("reference", session.Reference))

	return session, nil
}
