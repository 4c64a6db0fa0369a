package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2/log"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

// Payment event types published after workflow outcomes.
const (
	EventPaymentConfirmed = "payment_confirmed"
	EventPaymentCompleted = "payment_completed"
)

// PaymentEvent is the message body published to the payment topic.
type PaymentEvent struct {
	EventType     string    `json:"event_type"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits payment events to Kafka. A nil Publisher is valid and
// drops every event, so deployments without a broker configure nothing.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a synchronous Kafka producer. Returns (nil, nil)
// when no brokers are configured.
func NewPublisher(cfg config.KafkaConfig) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	log.Infof("[Events] Kafka producer connected to %v", cfg.Brokers)
	return &Publisher{producer: producer, topic: cfg.Topic}, nil
}

// Publish sends one event. Failures are logged, never surfaced: event
// delivery is best-effort and must not disturb the confirmation flow.
func (p *Publisher) Publish(event PaymentEvent) {
	if p == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[Events] Failed to marshal payment event: %v", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.TransactionID),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Errorf("[Events] Failed to publish %s for transaction %s: %v", event.EventType, event.TransactionID, err)
	}
}

// Close shuts the producer down.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.producer.Close(); err != nil {
		log.Errorf("[Events] Failed to close Kafka producer: %v", err)
	}
}
