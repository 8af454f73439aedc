package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus enumerates terminal states of a ledger entry
type PaymentStatus string

const (
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// PaymentTransaction is one row of the append-only payment ledger.
// Reference is the provider-issued idempotency key; the storage layer
// enforces uniqueness on it and rows are never updated after insert.
type PaymentTransaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	Reference   string          `json:"reference" db:"reference"`
	Amount      int64           `json:"amount" db:"amount"`
	Currency    string          `json:"currency" db:"currency"`
	Status      PaymentStatus   `json:"status" db:"status"`
	PaidBy      string          `json:"paid_by" db:"paid_by"`
	RawPayload  json.RawMessage `json:"raw_payload" db:"raw_payload"`
	ProcessedAt time.Time       `json:"processed_at" db:"processed_at"`
}

// CheckoutRequest is what the Checkout Initiator sends to the provider.
// Amount is already in minor units; Reference is generated per call and
// InvoiceID rides along as metadata for webhook correlation.
type CheckoutRequest struct {
	InvoiceID   string
	Email       string
	Amount      int64
	Currency    string
	Reference   string
	CallbackURL string
}

// CheckoutSession is the result of initializing a hosted checkout page
type CheckoutSession struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// EventKind is the closed set of webhook event kinds this service acts on.
// It is decoded exactly once, at the dispatch boundary; downstream logic
// switches on the enum rather than comparing provider strings.
type EventKind int

const (
	EventUnsupported EventKind = iota
	EventChargeSuccess
	EventChargeFailed
)

func (k EventKind) String() string {
	switch k {
	case EventChargeSuccess:
		return "charge.success"
	case EventChargeFailed:
		return "charge.failed"
	default:
		return "unsupported"
	}
}

// ChargeCustomer carries the payer identity reported by the provider
type ChargeCustomer struct {
	Email string `json:"email"`
}

// ChargeMetadata carries the correlation metadata we attached at checkout time
type ChargeMetadata struct {
	InvoiceID string `json:"invoice_id"`
}

// ChargeData is the provider payload for a single charge outcome
type ChargeData struct {
	Status          string         `json:"status"`
	Reference       string         `json:"reference"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	GatewayResponse string         `json:"gateway_response"`
	PaidAt          string         `json:"paid_at"`
	Customer        ChargeCustomer `json:"customer"`
	Metadata        ChargeMetadata `json:"metadata"`
}

// WebhookEvent is a decoded webhook delivery
type WebhookEvent struct {
	Kind EventKind
	Data ChargeData
	// Raw is the original body, retained for the audit column
	Raw json.RawMessage
}

// webhookEnvelope is the wire format of a Paystack webhook delivery
type webhookEnvelope struct {
	Event string     `json:"event"`
	Data  ChargeData `json:"data"`
}

// ParseWebhookEvent decodes a raw webhook body. Callers must verify the
// body's signature before parsing; an unverified body is never trusted.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	kind := EventUnsupported
	switch env.Event {
	case "charge.success":
		kind = EventChargeSuccess
	case "charge.failed":
		kind = EventChargeFailed
	}

	return &WebhookEvent{
		Kind: kind,
		Data: env.Data,
		Raw:  json.RawMessage(body),
	}, nil
}

// ReconcileOutcome classifies how a delivery was handled
type ReconcileOutcome string

const (
	// OutcomeApplied means the state transition was performed by this delivery
	OutcomeApplied ReconcileOutcome = "applied"
	// OutcomeIgnored means the reference was already processed; nothing changed
	OutcomeIgnored ReconcileOutcome = "ignored"
	// OutcomeUnsupported means the event kind is not handled; acknowledged so
	// the provider stops redelivering
	OutcomeUnsupported ReconcileOutcome = "event_not_handled"
)

// ReconcileResult reports the outcome of handling one webhook delivery
type ReconcileResult struct {
	Outcome   ReconcileOutcome `json:"status"`
	Reference string           `json:"reference,omitempty"`
	InvoiceID string           `json:"invoice_id,omitempty"`
}

// PaymentFailedEvent is published when a failed charge is recorded
type PaymentFailedEvent struct {
	InvoiceID string `json:"invoice_id"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// PaymentReconciledEvent is published after a successful reconciliation so
// downstream notifiers (email/WhatsApp) can react. Fire and forget.
type PaymentReconciledEvent struct {
	InvoiceID   string    `json:"invoice_id"`
	Reference   string    `json:"reference"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	PaidBy      string    `json:"paid_by"`
	ProcessedAt time.Time `json:"processed_at"`
}
