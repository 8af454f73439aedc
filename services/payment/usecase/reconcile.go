package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tomiwa/invoicepay/internal/pkg/logger"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// HandleWebhook runs one delivery through the gates:
// authenticate → parse/dispatch → correlate → dedup → amount → apply.
// Every gate is hard; nothing downstream of a failed gate executes.
func (uc *PaymentUsecase) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*models.ReconcileResult, error) {
	if !uc.paystack.VerifyWebhookSignature(rawBody, signature) {
		logger.Warn("Webhook rejected: signature verification failed")
		return nil, payment.ErrInvalidSignature
	}

	event, err := models.ParseWebhookEvent(rawBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrMalformedPayload, err)
	}

	if event.Kind == models.EventUnsupported {
		// Acknowledged, not an error: the provider must stop redelivering.
		logger.Info("Webhook event kind not handled")
		return &models.ReconcileResult{Outcome: models.OutcomeUnsupported}, nil
	}

	return uc.reconcile(ctx, event)
}

// ConfirmCallback verifies a reference after the payer is redirected back and
// funnels the outcome through the same apply path as the webhook, so a
// callback racing a webhook for the same reference is resolved by the ledger
// uniqueness constraint.
func (uc *PaymentUsecase) ConfirmCallback(ctx context.Context, reference string) (*models.ReconcileResult, error) {
	data, err := uc.paystack.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	var kind models.EventKind
	switch data.Status {
	case "success":
		kind = models.EventChargeSuccess
	case "failed":
		kind = models.EventChargeFailed
	default:
		logger.Info("Callback verification returned non-terminal status",
			logger.String("reference", reference),
			logger.String("status", data.Status))
		return &models.ReconcileResult{Outcome: models.OutcomeUnsupported, Reference: reference}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification payload: %w", err)
	}

	return uc.reconcile(ctx, &models.WebhookEvent{Kind: kind, Data: *data, Raw: raw})
}

// reconcile applies the at-most-once state transition for an authenticated
// charge event.
func (uc *PaymentUsecase) reconcile(ctx context.Context, event *models.WebhookEvent) (*models.ReconcileResult, error) {
	data := event.Data

	invoice, err := uc.invoices.GetInvoiceByID(ctx, data.Metadata.InvoiceID)
	if err != nil {
		logger.Warn("Webhook correlation failed",
			logger.String("reference", data.Reference),
			logger.String("invoice_id", data.Metadata.InvoiceID),
			logger.String("event", event.Kind.String()),
			logger.Err(err))
		return nil, err
	}

	ignored := &models.ReconcileResult{
		Outcome:   models.OutcomeIgnored,
		Reference: data.Reference,
		InvoiceID: invoice.InvoiceID,
	}

	// Dedup fast path; cache misses and errors fall through to the ledger.
	if seen, err := uc.dedup.IsProcessed(ctx, data.Reference); err == nil && seen {
		return ignored, nil
	}

	existing, err := uc.payments.GetTransactionByReference(ctx, data.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return ignored, nil
	}

	if data.Amount != invoice.Amount || !strings.EqualFold(data.Currency, invoice.Currency) {
		logger.Warn("Webhook rejected: amount mismatch",
			logger.String("reference", data.Reference),
			logger.String("invoice_id", invoice.InvoiceID),
			logger.Int64("event_amount", data.Amount),
			logger.Int64("invoice_amount", invoice.Amount),
			logger.String("event_currency", data.Currency))
		return nil, payment.ErrAmountMismatch
	}

	switch event.Kind {
	case models.EventChargeSuccess:
		return uc.applySuccess(ctx, invoice, event)
	case models.EventChargeFailed:
		return uc.applyFailure(ctx, invoice, event)
	default:
		return &models.ReconcileResult{Outcome: models.OutcomeUnsupported}, nil
	}
}

func (uc *PaymentUsecase) applySuccess(ctx context.Context, invoice *models.Invoice, event *models.WebhookEvent) (*models.ReconcileResult, error) {
	txn := uc.ledgerRow(invoice, event, models.PaymentStatusSuccessful)

	inserted, err := uc.payments.ApplyPayment(ctx, txn)
	if err != nil {
		// Storage failure before the transition was durable: surface as an
		// internal error so the provider redelivers.
		return nil, err
	}

	if err := uc.dedup.MarkProcessed(ctx, txn.Reference); err != nil {
		logger.Warn("Failed to mark reference in dedup cache",
			logger.String("reference", txn.Reference),
			logger.Err(err))
	}

	if !inserted {
		// Lost the race against a concurrent delivery of the same reference.
		return &models.ReconcileResult{
			Outcome:   models.OutcomeIgnored,
			Reference: txn.Reference,
			InvoiceID: invoice.InvoiceID,
		}, nil
	}

	// Notification dispatch is fire-and-forget; the payment state is already
	// committed and stays committed.
	if err := uc.events.PublishPaymentReconciled(&models.PaymentReconciledEvent{
		InvoiceID:   invoice.InvoiceID,
		Reference:   txn.Reference,
		Amount:      txn.Amount,
		Currency:    txn.Currency,
		PaidBy:      txn.PaidBy,
		ProcessedAt: txn.ProcessedAt,
	}); err != nil {
		logger.Warn("Failed to publish payment reconciled event",
			logger.String("reference", txn.Reference),
			logger.Err(err))
	}

	logger.Info("Payment reconciled",
		logger.String("invoice_id", invoice.InvoiceID),
		logger.String("reference", txn.Reference))

	return &models.ReconcileResult{
		Outcome:   models.OutcomeApplied,
		Reference: txn.Reference,
		InvoiceID: invoice.InvoiceID,
	}, nil
}

func (uc *PaymentUsecase) applyFailure(ctx context.Context, invoice *models.Invoice, event *models.WebhookEvent) (*models.ReconcileResult, error) {
	txn := uc.ledgerRow(invoice, event, models.PaymentStatusFailed)

	inserted, err := uc.payments.RecordFailedAttempt(ctx, txn)
	if err != nil {
		return nil, err
	}

	if !inserted {
		return &models.ReconcileResult{
			Outcome:   models.OutcomeIgnored,
			Reference: txn.Reference,
			InvoiceID: invoice.InvoiceID,
		}, nil
	}

	reason := event.Data.GatewayResponse
	if reason == "" {
		reason = "Payment failed"
	}

	if err := uc.events.PublishPaymentFailed(&models.PaymentFailedEvent{
		InvoiceID: invoice.InvoiceID,
		Reference: txn.Reference,
		Reason:    reason,
	}); err != nil {
		logger.Warn("Failed to publish payment failed event",
			logger.String("reference", txn.Reference),
			logger.Err(err))
	}

	logger.Warn("Payment failed",
		logger.String("invoice_id", invoice.InvoiceID),
		logger.String("reference", txn.Reference),
		logger.String("reason", reason))

	return &models.ReconcileResult{
		Outcome:   models.OutcomeApplied,
		Reference: txn.Reference,
		InvoiceID: invoice.InvoiceID,
	}, nil
}

func (uc *PaymentUsecase) ledgerRow(invoice *models.Invoice, event *models.WebhookEvent, status models.PaymentStatus) *models.PaymentTransaction {
	return &models.PaymentTransaction{
		ID:          uuid.New(),
		InvoiceID:   invoice.ID,
		Reference:   event.Data.Reference,
		Amount:      event.Data.Amount,
		Currency:    invoice.Currency,
		Status:      status,
		PaidBy:      event.Data.Customer.Email,
		RawPayload:  event.Raw,
		ProcessedAt: time.Now().UTC(),
	}
}
