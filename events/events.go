// Package events publishes order lifecycle events to Kafka. The broker
// is optional; without one, checkout simply skips publishing.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"kindle/domain"
	"kindle/log"

	"github.com/Shopify/sarama"
)

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

// PublishOrderCreated sends the event keyed by order number, so all
// events for one order land in the same partition.
func (k *KafkaPublisher) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(event.OrderNumber),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("send order created: %w", err)
	}
	log.GetLogger(ctx).
		WithField("order_number", event.OrderNumber).
		Debugf("order event at partition %d offset %d", partition, offset)
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
