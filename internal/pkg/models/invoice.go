package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus enumerates the invoice lifecycle states
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice represents an invoice owned by a single user account.
// Amount is stored in minor units (kobo for NGN) so that the webhook
// amount gate compares integers, never floats.
type Invoice struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	InvoiceID   string        `json:"invoice_id" db:"invoice_id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	ClientName  string        `json:"client_name" db:"client_name"`
	ClientEmail string        `json:"client_email" db:"client_email"`
	Amount      int64         `json:"amount" db:"amount"`
	Currency    string        `json:"currency" db:"currency"`
	Status      InvoiceStatus `json:"status" db:"status"`
	IssueDate   time.Time     `json:"issue_date" db:"issue_date"`
	DueDate     *time.Time    `json:"due_date,omitempty" db:"due_date"`
	PaidDate    *time.Time    `json:"paid_date,omitempty" db:"paid_date"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// IsPayable reports whether the invoice can still receive a payment.
// Paid is terminal; a reconciled invoice never transitions backward.
func (i *Invoice) IsPayable() bool {
	return i.Status != InvoiceStatusPaid && i.Status != InvoiceStatusCancelled
}
