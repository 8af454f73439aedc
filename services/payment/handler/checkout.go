package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tomiwa/invoicepay/internal/pkg/middleware"
	"github.com/tomiwa/invoicepay/internal/utils"
	"github.com/tomiwa/invoicepay/services/payment"
)

// CreateCheckout handles checkout session creation for an invoice
func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	invoiceID := c.Param("invoiceID")
	if invoiceID == "" {
		return utils.BadRequestResponse(c, "Invoice ID is required")
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	session, err := h.paymentUC.CreateCheckout(c.Request().Context(), invoiceID, userID)
	if err != nil {
		// Foreign invoices look exactly like missing ones from the outside
		if errors.Is(err, payment.ErrInvoiceNotFound) || errors.Is(err, payment.ErrInvoiceForbidden) {
			return utils.NotFoundResponse(c, "Invoice not found")
		}

		var upstream *payment.UpstreamError
		if errors.As(err, &upstream) {
			return utils.BadGatewayResponse(c, upstream.Error())
		}
		if errors.Is(err, payment.ErrProviderNotConfigured) {
			return utils.BadGatewayResponse(c, "Payment provider is not configured")
		}

		return utils.InternalServerErrorResponse(c, "Failed to create checkout session")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Checkout session created", session)
}
