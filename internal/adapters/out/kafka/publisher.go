// Package kafka publishes committed domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metric"
	"checkout/internal/pkg/sl"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const HeaderEventName = "event-name"

// Envelope is the message value. Payload is the event itself.
type Envelope struct {
	EventID     string    `json:"eventId"`
	EventName   string    `json:"eventName"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewProducer dials the brokers with a producer that waits for all in-sync replicas.
func NewProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Producer.Retry.Max = 5
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_publisher", "topic", topic),
	}
}

// Publish sends every event keyed by its aggregate id, so events of one order
// land on one partition in the order they were recorded.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var failed []error
	for _, event := range events {
		msg, err := p.message(event)
		if err == nil {
			var partition int32
			var offset int64
			partition, offset, err = p.producer.SendMessage(msg)
			if err == nil {
				p.logger.DebugContext(ctx, "event published",
					sl.Traced(ctx),
					slog.String("event", event.EventName()),
					slog.String("aggregate_id", event.AggregateID().String()),
					slog.Int("partition", int(partition)),
					slog.Int64("offset", offset))
			}
		}
		metric.EventsPublishedTotal.WithLabelValues(event.EventName(), metric.Status(err)).Inc()
		if err != nil {
			failed = append(failed, fmt.Errorf("%s %s: %w", event.EventName(), event.AggregateID(), err))
		}
	}
	if len(failed) > 0 {
		return errs.NewDependencyUnavailableErrorWithCause("kafka", errors.Join(failed...))
	}
	return nil
}

func (p *Publisher) message(event kernel.DomainEvent) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(Envelope{
		EventID:     uuid.NewString(),
		EventName:   event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     event,
	})
	if err != nil {
		return nil, err
	}
	return &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.AggregateID().String()),
		Value:     sarama.ByteEncoder(value),
		Timestamp: event.OccurredAt(),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventName), Value: []byte(event.EventName())},
		},
	}, nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
