package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookEvent(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantKind EventKind
		wantErr  bool
	}{
		{
			name:     "Charge Success",
			body:     `{"event":"charge.success","data":{"status":"success","reference":"ref-1","amount":500000,"currency":"NGN","metadata":{"invoice_id":"INV-0001"}}}`,
			wantKind: EventChargeSuccess,
		},
		{
			name:     "Charge Failed",
			body:     `{"event":"charge.failed","data":{"status":"failed","reference":"ref-2"}}`,
			wantKind: EventChargeFailed,
		},
		{
			name:     "Unknown Event Kind",
			body:     `{"event":"transfer.success","data":{"reference":"ref-3"}}`,
			wantKind: EventUnsupported,
		},
		{
			name:     "Missing Event Field",
			body:     `{"data":{"reference":"ref-4"}}`,
			wantKind: EventUnsupported,
		},
		{
			name:    "Malformed JSON",
			body:    `{"event":"charge.success",`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := ParseWebhookEvent([]byte(tc.body))

			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, event)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, event.Kind)
			assert.JSONEq(t, tc.body, string(event.Raw))
		})
	}
}

func TestParseWebhookEvent_DataFields(t *testing.T) {
	body := `{
		"event": "charge.success",
		"data": {
			"status": "success",
			"reference": "INV-0001-20250101120000",
			"amount": 500000,
			"currency": "NGN",
			"gateway_response": "Approved",
			"customer": {"email": "payer@acme.test"},
			"metadata": {"invoice_id": "INV-0001"}
		}
	}`

	event, err := ParseWebhookEvent([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "INV-0001-20250101120000", event.Data.Reference)
	assert.Equal(t, int64(500000), event.Data.Amount)
	assert.Equal(t, "NGN", event.Data.Currency)
	assert.Equal(t, "payer@acme.test", event.Data.Customer.Email)
	assert.Equal(t, "INV-0001", event.Data.Metadata.InvoiceID)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "charge.success", EventChargeSuccess.String())
	assert.Equal(t, "charge.failed", EventChargeFailed.String())
	assert.Equal(t, "unsupported", EventUnsupported.String())
}

func TestInvoiceIsPayable(t *testing.T) {
	testCases := []struct {
		status InvoiceStatus
		want   bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusSent, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusPaid, false},
		{InvoiceStatusCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			invoice := &Invoice{Status: tc.status}
			assert.Equal(t, tc.want, invoice.IsPayable())
		})
	}
}
