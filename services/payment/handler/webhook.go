package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tomiwa/invoicepay/internal/utils"
	"github.com/tomiwa/invoicepay/services/payment"
)

// SignatureHeader carries the provider's HMAC over the raw request body
const SignatureHeader = "X-Paystack-Signature"

// PaystackWebhook handles asynchronous charge notifications. Applied and
// ignored outcomes both acknowledge with 200 so the provider stops
// redelivering; only internal failures return a retryable status.
func (h *PaymentHandler) PaystackWebhook(c echo.Context) error {
	signature := c.Request().Header.Get(SignatureHeader)
	if signature == "" {
		return utils.UnauthorizedResponse(c, "Missing signature")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return utils.BadRequestResponse(c, "Unable to read request body")
	}

	result, err := h.paymentUC.HandleWebhook(c.Request().Context(), body, signature)
	if err != nil {
		return mapReconcileError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// PaymentCallback handles the redirect back from the hosted checkout page,
// verifying the referenced transaction against the provider.
func (h *PaymentHandler) PaymentCallback(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		return utils.BadRequestResponse(c, "Payment reference is required")
	}

	result, err := h.paymentUC.ConfirmCallback(c.Request().Context(), reference)
	if err != nil {
		return mapReconcileError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment verified", result)
}

// mapReconcileError translates the reconciliation error taxonomy to HTTP.
// Authentication and validation rejections are definitive (no retry
// invited); everything else is a 5xx so the provider redelivers.
func mapReconcileError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		return utils.UnauthorizedResponse(c, "Invalid signature")
	case errors.Is(err, payment.ErrMalformedPayload):
		return utils.BadRequestResponse(c, "Invalid payload")
	case errors.Is(err, payment.ErrInvoiceNotFound):
		return utils.NotFoundResponse(c, "Invoice not found")
	case errors.Is(err, payment.ErrAmountMismatch):
		return utils.BadRequestResponse(c, "Amount does not match invoice")
	}

	var upstream *payment.UpstreamError
	if errors.As(err, &upstream) {
		return utils.BadGatewayResponse(c, upstream.Error())
	}

	return utils.InternalServerErrorResponse(c, "Failed to process payment event")
}
