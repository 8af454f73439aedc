package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
	"github.com/tomiwa/invoicepay/services/payment/mocks"
)

type reconcileMocks struct {
	invoices *mocks.MockInvoiceRepo
	payments *mocks.MockPaymentRepo
	dedup    *mocks.MockDedupCache
	paystack *mocks.MockPaystackGW
	events   *mocks.MockEventsGW
}

func setupReconcileTest(t *testing.T) (payment.PaymentUC, *reconcileMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	m := &reconcileMocks{
		invoices: mocks.NewMockInvoiceRepo(ctrl),
		payments: mocks.NewMockPaymentRepo(ctrl),
		dedup:    mocks.NewMockDedupCache(ctrl),
		paystack: mocks.NewMockPaystackGW(ctrl),
		events:   mocks.NewMockEventsGW(ctrl),
	}

	uc := NewPaymentUC(newTestConfig(), m.invoices, m.payments, m.dedup, m.paystack, m.events)
	return uc, m, ctrl
}

func webhookBody(t *testing.T, event, status, reference, invoiceID string, amount int64) []byte {
	response := "Approved"
	if status == "failed" {
		response = "Declined"
	}
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data": map[string]interface{}{
			"status":           status,
			"reference":        reference,
			"amount":           amount,
			"currency":         "NGN",
			"gateway_response": response,
			"customer":         map[string]string{"email": "payer@acme.test"},
			"metadata":         map[string]string{"invoice_id": invoiceID},
		},
	})
	require.NoError(t, err)
	return body
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	body := webhookBody(t, "charge.success", "success", "INV-0001-20250101120000", "INV-0001", 500000)

	// Nothing past the signature gate may execute
	m.paystack.EXPECT().VerifyWebhookSignature(body, "bad-signature").Return(false)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "bad-signature")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestHandleWebhook_MalformedPayload(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	body := []byte(`{"event": "charge.success", "data":`)
	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, payment.ErrMalformedPayload)
}

func TestHandleWebhook_UnsupportedEvent(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	body := webhookBody(t, "transfer.success", "success", "ref-1", "INV-0001", 500000)
	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeUnsupported, result.Outcome)
}

func TestHandleWebhook_ChargeSuccessApplied(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	userID := uuid.New()
	invoice := newTestInvoice(userID)
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().
		ApplyPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.PaymentTransaction) (bool, error) {
			assert.Equal(t, invoice.ID, txn.InvoiceID)
			assert.Equal(t, reference, txn.Reference)
			assert.Equal(t, invoice.Amount, txn.Amount)
			assert.Equal(t, models.PaymentStatusSuccessful, txn.Status)
			assert.Equal(t, "payer@acme.test", txn.PaidBy)
			assert.JSONEq(t, string(body), string(txn.RawPayload))
			return true, nil
		})
	m.dedup.EXPECT().MarkProcessed(gomock.Any(), reference).Return(nil)
	m.events.EXPECT().PublishPaymentReconciled(gomock.Any()).Return(nil)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeApplied, result.Outcome)
	assert.Equal(t, reference, result.Reference)
	assert.Equal(t, "INV-0001", result.InvoiceID)
}

func TestHandleWebhook_RedeliveryIgnoredViaDedupCache(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(true, nil)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeIgnored, result.Outcome)
}

func TestHandleWebhook_RedeliveryIgnoredViaLedger(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	existing := &models.PaymentTransaction{
		ID:        uuid.New(),
		InvoiceID: invoice.ID,
		Reference: reference,
		Status:    models.PaymentStatusSuccessful,
	}

	// Cache miss falls through to the authoritative ledger lookup
	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, errors.New("redis down"))
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(existing, nil)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeIgnored, result.Outcome)
}

func TestHandleWebhook_ConcurrentDuplicateLoserIgnored(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	// Both gates pass but another delivery wins the insert race; no
	// notification may be published for the loser.
	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Return(false, nil)
	m.dedup.EXPECT().MarkProcessed(gomock.Any(), reference).Return(nil)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeIgnored, result.Outcome)
}

func TestHandleWebhook_AmountMismatch(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount-100)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, payment.ErrAmountMismatch)
}

func TestHandleWebhook_UnknownInvoice(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	body := webhookBody(t, "charge.success", "success", "ref-1", "INV-9999", 500000)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-9999").Return(nil, payment.ErrInvoiceNotFound)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, payment.ErrInvoiceNotFound)
}

func TestHandleWebhook_ChargeFailedRecorded(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.failed", "failed", reference, "INV-0001", invoice.Amount)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().
		RecordFailedAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.PaymentTransaction) (bool, error) {
			assert.Equal(t, models.PaymentStatusFailed, txn.Status)
			return true, nil
		})
	m.events.EXPECT().
		PublishPaymentFailed(gomock.Any()).
		DoAndReturn(func(event *models.PaymentFailedEvent) error {
			assert.Equal(t, "INV-0001", event.InvoiceID)
			assert.Equal(t, "Declined", event.Reason)
			return nil
		})

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeApplied, result.Outcome)
}

func TestHandleWebhook_PublishFailureDoesNotFailReconciliation(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Return(true, nil)
	m.dedup.EXPECT().MarkProcessed(gomock.Any(), reference).Return(errors.New("redis down"))
	m.events.EXPECT().PublishPaymentReconciled(gomock.Any()).Return(errors.New("nats down"))

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeApplied, result.Outcome)
}

func TestHandleWebhook_StorageFailureSurfaced(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"
	body := webhookBody(t, "charge.success", "success", reference, "INV-0001", invoice.Amount)

	dbErr := fmt.Errorf("failed to commit payment: %w", errors.New("connection reset"))
	m.paystack.EXPECT().VerifyWebhookSignature(body, "sig").Return(true)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Return(false, dbErr)

	// Act
	result, err := uc.HandleWebhook(context.Background(), body, "sig")

	// Assert
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit payment")
}

func TestConfirmCallback_Success(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"

	data := &models.ChargeData{
		Status:    "success",
		Reference: reference,
		Amount:    invoice.Amount,
		Currency:  "NGN",
		Customer:  models.ChargeCustomer{Email: "payer@acme.test"},
		Metadata:  models.ChargeMetadata{InvoiceID: "INV-0001"},
	}

	m.paystack.EXPECT().VerifyTransaction(gomock.Any(), reference).Return(data, nil)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(false, nil)
	m.payments.EXPECT().GetTransactionByReference(gomock.Any(), reference).Return(nil, nil)
	m.payments.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Return(true, nil)
	m.dedup.EXPECT().MarkProcessed(gomock.Any(), reference).Return(nil)
	m.events.EXPECT().PublishPaymentReconciled(gomock.Any()).Return(nil)

	// Act
	result, err := uc.ConfirmCallback(context.Background(), reference)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeApplied, result.Outcome)
	assert.Equal(t, reference, result.Reference)
}

func TestConfirmCallback_AfterWebhookIgnored(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	invoice := newTestInvoice(uuid.New())
	reference := "INV-0001-20250101120000"

	data := &models.ChargeData{
		Status:    "success",
		Reference: reference,
		Amount:    invoice.Amount,
		Currency:  "NGN",
		Metadata:  models.ChargeMetadata{InvoiceID: "INV-0001"},
	}

	// The webhook already applied this reference; the callback must not
	// apply it again.
	m.paystack.EXPECT().VerifyTransaction(gomock.Any(), reference).Return(data, nil)
	m.invoices.EXPECT().GetInvoiceByID(gomock.Any(), "INV-0001").Return(invoice, nil)
	m.dedup.EXPECT().IsProcessed(gomock.Any(), reference).Return(true, nil)

	// Act
	result, err := uc.ConfirmCallback(context.Background(), reference)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeIgnored, result.Outcome)
}

func TestConfirmCallback_PendingStatus(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	reference := "INV-0001-20250101120000"
	data := &models.ChargeData{Status: "pending", Reference: reference}

	m.paystack.EXPECT().VerifyTransaction(gomock.Any(), reference).Return(data, nil)

	// Act
	result, err := uc.ConfirmCallback(context.Background(), reference)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeUnsupported, result.Outcome)
}

func TestConfirmCallback_VerificationError(t *testing.T) {
	// Arrange
	uc, m, ctrl := setupReconcileTest(t)
	defer ctrl.Finish()

	upstreamErr := &payment.UpstreamError{Operation: "verify", Message: "Transaction not found"}
	m.paystack.EXPECT().VerifyTransaction(gomock.Any(), "ref-missing").Return(nil, upstreamErr)

	// Act
	result, err := uc.ConfirmCallback(context.Background(), "ref-missing")

	// Assert
	assert.Nil(t, result)
	var ue *payment.UpstreamError
	assert.ErrorAs(t, err, &ue)
}
