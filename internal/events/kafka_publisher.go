// Package events publishes domain events to Kafka.
package events

import (
	"context"

	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/kafka"
	"github.com/mes-platform/production-tracker/pkg/logging"
	"github.com/mes-platform/production-tracker/pkg/metrics"
)

// KafkaPublisher publishes domain events, routing each event type to its
// topic. It implements the application layer's EventPublisher.
type KafkaPublisher struct {
	producer *kafka.Producer
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewKafkaPublisher creates a KafkaPublisher. metrics may be nil.
func NewKafkaPublisher(producer *kafka.Producer, m *metrics.Metrics, logger *logging.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		metrics:  m,
		logger:   logger.WithComponent("kafka-publisher"),
	}
}

// Publish sends the event keyed by its subject so records of one unit or
// order stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	topic := topicFor(event)

	err := p.producer.Publish(ctx, topic, event.Subject(), event.EventType(), event)
	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(topic, err)
	}
	if err != nil {
		return err
	}

	p.logger.Event(event.EventType(), event.Subject(), "topic", topic)
	return nil
}

// Close flushes and closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

func topicFor(event domain.DomainEvent) string {
	switch event.(type) {
	case domain.OrderSubmittedEvent:
		return kafka.Topics.OrderEvents
	case domain.BarcodesIssuedEvent:
		return kafka.Topics.LabelEvents
	default:
		return kafka.Topics.StageEvents
	}
}
