package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
	"github.com/tomiwa/invoicepay/services/payment/mocks"
)

func setupCheckoutRequest(userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/invoices/INV-0001/checkout", nil)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames("invoiceID")
	c.SetParamValues("INV-0001")
	if userID != nil {
		c.Set("user_id", userID)
	}

	return c, rec
}

func TestCreateCheckoutHandler_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(mockUC, &models.Config{})

	userID := uuid.New()
	session := &models.CheckoutSession{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        "INV-0001-20250101120000",
	}

	mockUC.EXPECT().CreateCheckout(gomock.Any(), "INV-0001", userID).Return(session, nil)

	c, rec := setupCheckoutRequest(userID)

	// Act
	err := h.CreateCheckout(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    models.CheckoutSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, session.AuthorizationURL, resp.Data.AuthorizationURL)
	assert.Equal(t, session.Reference, resp.Data.Reference)
}

func TestCreateCheckoutHandler_MissingUser(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(mockUC, &models.Config{})

	c, rec := setupCheckoutRequest(nil)

	// Act
	err := h.CreateCheckout(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCheckoutHandler_NotFoundAndForbiddenLookAlike(t *testing.T) {
	testCases := []struct {
		name    string
		ucError error
	}{
		{name: "Invoice Not Found", ucError: payment.ErrInvoiceNotFound},
		{name: "Foreign Invoice", ucError: payment.ErrInvoiceForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockPaymentUC(ctrl)
			h := NewPaymentHandler(mockUC, &models.Config{})

			userID := uuid.New()
			mockUC.EXPECT().CreateCheckout(gomock.Any(), "INV-0001", userID).Return(nil, tc.ucError)

			c, rec := setupCheckoutRequest(userID)

			// Act
			err := h.CreateCheckout(c)

			// Assert: both cases are indistinguishable to the caller
			assert.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invoice not found")
		})
	}
}

func TestCreateCheckoutHandler_UpstreamError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(mockUC, &models.Config{})

	userID := uuid.New()
	upstreamErr := &payment.UpstreamError{Operation: "initialize", Err: errors.New("connection refused")}
	mockUC.EXPECT().CreateCheckout(gomock.Any(), "INV-0001", userID).Return(nil, upstreamErr)

	c, rec := setupCheckoutRequest(userID)

	// Act
	err := h.CreateCheckout(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCreateCheckoutHandler_InternalError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(mockUC, &models.Config{})

	userID := uuid.New()
	mockUC.EXPECT().CreateCheckout(gomock.Any(), "INV-0001", userID).Return(nil, errors.New("boom"))

	c, rec := setupCheckoutRequest(userID)

	// Act
	err := h.CreateCheckout(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
