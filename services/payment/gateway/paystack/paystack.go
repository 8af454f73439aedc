package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/tomiwa/invoicepay/internal/pkg/circuitbreaker"
	httpclient "github.com/tomiwa/invoicepay/internal/pkg/http"
	"github.com/tomiwa/invoicepay/internal/pkg/logger"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
	"github.com/tomiwa/invoicepay/services/payment"
)

// Gateway implements payment.PaystackGW against the Paystack REST API.
// The shared secret both authorizes outbound calls and verifies inbound
// webhook signatures.
type Gateway struct {
	cfg     models.PaystackConfig
	client  *httpclient.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *logger.ZapLogger
}

// NewGateway creates a new Paystack gateway
func NewGateway(cfg models.PaystackConfig, zapLogger *logger.ZapLogger) *Gateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	client := httpclient.NewClient(cfg.BaseURL, timeout)
	client.SetHeader("Authorization", "Bearer "+cfg.SecretKey)

	return &Gateway{
		cfg:     cfg,
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("paystack"), zapLogger),
		logger:  zapLogger,
	}
}

// envelope is the outer shape of every Paystack API response
type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type initializeRequest struct {
	Amount      int64          `json:"amount"`
	Email       string         `json:"email"`
	Reference   string         `json:"reference"`
	Currency    string         `json:"currency"`
	CallbackURL string         `json:"callback_url"`
	Metadata    initializeMeta `json:"metadata"`
}

type initializeMeta struct {
	InvoiceID string `json:"invoice_id"`
}

type initializeResponse struct {
	envelope
	Data models.CheckoutSession `json:"data"`
}

type verifyResponse struct {
	envelope
	Data models.ChargeData `json:"data"`
}

// InitializeTransaction creates a hosted checkout session for an invoice
func (g *Gateway) InitializeTransaction(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutSession, error) {
	if g.cfg.SecretKey == "" {
		return nil, payment.ErrProviderNotConfigured
	}

	payload := initializeRequest{
		Amount:      req.Amount,
		Email:       req.Email,
		Reference:   req.Reference,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    initializeMeta{InvoiceID: req.InvoiceID},
	}

	var resp initializeResponse
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		status, err := g.client.PostJSON(ctx, "/transaction/initialize", payload, &resp)
		if err != nil {
			return err
		}
		if status != http.StatusOK || !resp.Status {
			return &payment.UpstreamError{Operation: "initialize", Message: resp.Message}
		}
		return nil
	})
	if err != nil {
		g.logger.Error("Paystack initialization failed",
			logger.String("invoice_id", req.InvoiceID),
			logger.String("reference", req.Reference),
			logger.Err(err))
		return nil, asUpstream("initialize", err)
	}

	g.logger.Info("Payment initialized",
		logger.String("invoice_id", req.InvoiceID),
		logger.String("reference", resp.Data.Reference))

	return &resp.Data, nil
}

// VerifyTransaction fetches the charge outcome for a reference
func (g *Gateway) VerifyTransaction(ctx context.Context, reference string) (*models.ChargeData, error) {
	if g.cfg.SecretKey == "" {
		return nil, payment.ErrProviderNotConfigured
	}

	var resp verifyResponse
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		status, err := g.client.GetJSON(ctx, fmt.Sprintf("/transaction/verify/%s", reference), &resp)
		if err != nil {
			return err
		}
		if status != http.StatusOK || !resp.Status {
			return &payment.UpstreamError{Operation: "verify", Message: resp.Message}
		}
		return nil
	})
	if err != nil {
		g.logger.Error("Transaction verification failed",
			logger.String("reference", reference),
			logger.Err(err))
		return nil, asUpstream("verify", err)
	}

	return &resp.Data, nil
}

// VerifyWebhookSignature computes HMAC-SHA512 over the raw body with the
// secret key and compares the hex digest against the signature header in
// constant time. The only defense on an otherwise unauthenticated endpoint.
func (g *Gateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if g.cfg.SecretKey == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(g.cfg.SecretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// asUpstream normalizes transport and breaker errors into UpstreamError
// without double-wrapping the ones the call already produced.
func asUpstream(operation string, err error) error {
	if ue, ok := err.(*payment.UpstreamError); ok {
		return ue
	}
	return &payment.UpstreamError{Operation: operation, Err: err}
}
