package payment

import (
	"errors"
	"fmt"
)

// Sentinel errors for the reconciliation and checkout flows. Handlers map
// these to HTTP statuses; none of them should invite provider retries.
var (
	// ErrInvalidSignature means the webhook body failed HMAC verification.
	// The body is never parsed once this is returned.
	ErrInvalidSignature = errors.New("webhook signature verification failed")

	// ErrInvoiceNotFound means no invoice matches the requested id
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceForbidden means the invoice exists but belongs to another
	// user. The HTTP edge reports it identically to ErrInvoiceNotFound so
	// foreign invoices are never revealed; it exists so logs can tell the
	// two apart.
	ErrInvoiceForbidden = errors.New("invoice belongs to another user")

	// ErrAmountMismatch means the event amount or currency does not equal
	// the invoice's expected amount; the invoice is not marked paid.
	ErrAmountMismatch = errors.New("event amount does not match invoice amount")

	// ErrMalformedPayload means an authenticated body failed JSON decoding
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrProviderNotConfigured means the Paystack secret key is missing
	ErrProviderNotConfigured = errors.New("payment provider is not configured")
)

// UpstreamError reports a failure talking to the payment provider during
// checkout creation or verification. It carries the upstream message and is
// surfaced to the caller as a structured error; no automatic retry happens
// here.
type UpstreamError struct {
	Operation string
	Message   string
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("paystack %s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("paystack %s failed", e.Operation)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
