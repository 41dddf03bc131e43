package initializers

import (
	"os"

	"github.com/segmentio/kafka-go"
)

// NewOrderEventsWriter returns a writer for the order events topic, or nil
// when no broker is configured (event publishing is optional).
func NewOrderEventsWriter() *kafka.Writer {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_ORDER_TOPIC")
	if topic == "" {
		topic = "order-events"
	}

	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
