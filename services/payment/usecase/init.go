package usecase

import (
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// PaymentUsecase implements the payment.PaymentUC interface
type PaymentUsecase struct {
	cfg      *models.Config
	invoices payment.InvoiceRepo
	payments payment.PaymentRepo
	dedup    payment.DedupCache
	paystack payment.PaystackGW
	events   payment.EventsGW
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(
	cfg *models.Config,
	invoices payment.InvoiceRepo,
	payments payment.PaymentRepo,
	dedup payment.DedupCache,
	paystack payment.PaystackGW,
	events payment.EventsGW,
) payment.PaymentUC {
	return &PaymentUsecase{
		cfg:      cfg,
		invoices: invoices,
		payments: payments,
		dedup:    dedup,
		paystack: paystack,
		events:   events,
	}
}
