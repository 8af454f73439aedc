package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/tomiwa/invoicepay/internal/pkg/middleware"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payment.PaymentUC
	cfg       *models.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUC payment.PaymentUC, cfg *models.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		cfg:       cfg,
	}
}

// RegisterRoutes registers the payment routes
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	// Checkout initiation is scoped to the authenticated invoice owner
	g := e.Group("/api/v1/payments")
	g.Use(middleware.JWTAuthMiddleware(h.cfg.JWT))
	g.POST("/invoices/:invoiceID/checkout", h.CreateCheckout)

	// The webhook endpoint is unauthenticated at the transport level; the
	// signature gate inside the usecase is the only defense.
	e.POST("/webhooks/paystack", h.PaystackWebhook)

	// Browser redirect target after a hosted checkout completes
	e.GET("/payments/callback", h.PaymentCallback)
}
