package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// PostgresInvoiceRepo implements the payment.InvoiceRepo interface
type PostgresInvoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sqlx.DB) payment.InvoiceRepo {
	return &PostgresInvoiceRepo{db: db}
}

// GetInvoiceByID fetches an invoice by its human-readable invoice id
func (r *PostgresInvoiceRepo) GetInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.GetContext(ctx, &invoice, `
		SELECT id, invoice_id, user_id, client_name, client_email, amount,
		       currency, status, issue_date, due_date, paid_date, created_at, updated_at
		FROM invoices
		WHERE invoice_id = $1
	`, invoiceID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

// PostgresPaymentRepo implements the payment.PaymentRepo interface
type PostgresPaymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new payment ledger repository
func NewPaymentRepository(db *sqlx.DB) payment.PaymentRepo {
	return &PostgresPaymentRepo{db: db}
}

const insertTransactionQuery = `
	INSERT INTO payment_transactions (
		id, invoice_id, reference, amount, currency,
		status, paid_by, raw_payload, processed_at
	) VALUES (
		:id, :invoice_id, :reference, :amount, :currency,
		:status, :paid_by, :raw_payload, :processed_at
	)
	ON CONFLICT (reference) DO NOTHING
`

// ApplyPayment inserts the ledger row and flips the invoice to paid inside a
// single database transaction. The unique index on reference is the
// serialization point: under concurrent duplicate deliveries exactly one
// insert lands, and only that caller updates the invoice.
func (r *PostgresPaymentRepo) ApplyPayment(ctx context.Context, txn *models.PaymentTransaction) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, insertTransactionQuery, txn)
	if err != nil {
		return false, fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Reference already in the ledger; the duplicate delivery loses.
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE invoices
		SET status = 'paid', paid_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
	`, txn.InvoiceID)
	if err != nil {
		return false, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit payment: %w", err)
	}

	return true, nil
}

// RecordFailedAttempt inserts a failed ledger row if the reference is unseen
func (r *PostgresPaymentRepo) RecordFailedAttempt(ctx context.Context, txn *models.PaymentTransaction) (bool, error) {
	result, err := r.db.NamedExecContext(ctx, insertTransactionQuery, txn)
	if err != nil {
		return false, fmt.Errorf("failed to record failed attempt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetTransactionByReference returns the ledger row for a reference, or nil
func (r *PostgresPaymentRepo) GetTransactionByReference(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	err := r.db.GetContext(ctx, &txn, `
		SELECT id, invoice_id, reference, amount, currency,
		       status, paid_by, raw_payload, processed_at
		FROM payment_transactions
		WHERE reference = $1
	`, reference)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	return &txn, nil
}
