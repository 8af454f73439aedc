package constants

// NATS Subjects
const (
	// Payment events
	SubjectPaymentReconciled = "payments.reconciled"
	SubjectPaymentFailed     = "payments.failed"
)
