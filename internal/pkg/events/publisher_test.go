package events

import (
	"testing"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

func TestNewPublisherWithoutBrokers(t *testing.T) {
	publisher, err := NewPublisher(config.KafkaConfig{Topic: "payment.events"})
	if err != nil {
		t.Fatalf("NewPublisher returned error: %v", err)
	}
	if publisher != nil {
		t.Fatalf("expected nil publisher when no brokers are configured")
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var publisher *Publisher

	// Must not panic.
	publisher.Publish(PaymentEvent{
		EventType:     EventPaymentConfirmed,
		TransactionID: "42",
		Amount:        100.00,
		Email:         "a@b.com",
	})
	publisher.Close()
}
