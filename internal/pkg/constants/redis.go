package constants

import "time"

// Redis key formats
const (
	// KeyProcessedReference marks a provider reference as already reconciled.
	// Fast path only; the payment_transactions uniqueness constraint stays
	// authoritative. Format: payment:processed:{reference}
	KeyProcessedReference = "payment:processed:%s"
)

// ProcessedReferenceTTL bounds how long the dedup fast path is kept. Paystack
// stops redelivering well inside this window.
const ProcessedReferenceTTL = 72 * time.Hour
