package payment

import (
	"context"

	"github.com/tomiwa/invoicepay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/tomiwa/invoicepay/services/payment InvoiceRepo,PaymentRepo,DedupCache

// InvoiceRepo reads invoices. Invoice CRUD lives elsewhere; this service only
// resolves invoices and flips them to paid through PaymentRepo.ApplyPayment.
type InvoiceRepo interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
}

// PaymentRepo owns the append-only payment ledger
type PaymentRepo interface {
	// ApplyPayment inserts the successful ledger row and marks the invoice
	// paid as one atomic unit. The insert relies on the uniqueness
	// constraint on reference: the loser of a concurrent duplicate delivery
	// gets inserted=false and must treat that as the ignored outcome.
	ApplyPayment(ctx context.Context, txn *models.PaymentTransaction) (inserted bool, err error)

	// RecordFailedAttempt inserts a failed ledger row if the reference is
	// unseen. Invoice status is never touched.
	RecordFailedAttempt(ctx context.Context, txn *models.PaymentTransaction) (inserted bool, err error)

	// GetTransactionByReference returns the ledger row for a reference, or
	// nil when none exists.
	GetTransactionByReference(ctx context.Context, reference string) (*models.PaymentTransaction, error)
}

// DedupCache is the best-effort fast path in front of the ledger lookup.
// Errors are advisory; the database constraint stays authoritative.
type DedupCache interface {
	IsProcessed(ctx context.Context, reference string) (bool, error)
	MarkProcessed(ctx context.Context, reference string) error
}
