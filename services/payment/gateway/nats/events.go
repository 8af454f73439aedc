package nats

import (
	"encoding/json"
	"fmt"

	"github.com/tomiwa/invoicepay/internal/pkg/constants"
	"github.com/tomiwa/invoicepay/internal/pkg/models"
)

// Publisher is the subset of the NATS client the gateway needs
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventsGateway publishes payment events for downstream notifiers
// (email/WhatsApp dispatch lives in another service).
type EventsGateway struct {
	client Publisher
}

// NewEventsGateway creates a new NATS events gateway
func NewEventsGateway(client Publisher) *EventsGateway {
	return &EventsGateway{client: client}
}

// PublishPaymentReconciled announces a successfully reconciled payment
func (g *EventsGateway) PublishPaymentReconciled(event *models.PaymentReconciledEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment reconciled event: %w", err)
	}

	if err := g.client.Publish(constants.SubjectPaymentReconciled, data); err != nil {
		return fmt.Errorf("failed to publish payment reconciled event: %w", err)
	}

	return nil
}

// PublishPaymentFailed announces a recorded failed charge
func (g *EventsGateway) PublishPaymentFailed(event *models.PaymentFailedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment failed event: %w", err)
	}

	if err := g.client.Publish(constants.SubjectPaymentFailed, data); err != nil {
		return fmt.Errorf("failed to publish payment failed event: %w", err)
	}

	return nil
}
