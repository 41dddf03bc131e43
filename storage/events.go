package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/qrdine/qrdine-api/services"
	"github.com/segmentio/kafka-go"
)

// KafkaOrderEvents publishes order lifecycle events to a Kafka topic for
// downstream consumers (audit, reporting). Publishing is best-effort: a
// broker outage is logged and the request proceeds.
type KafkaOrderEvents struct {
	writer *kafka.Writer
}

func NewKafkaOrderEvents(writer *kafka.Writer) *KafkaOrderEvents {
	return &KafkaOrderEvents{writer: writer}
}

func (p *KafkaOrderEvents) Publish(ctx context.Context, event services.OrderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Println("unable to encode order event:", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.Type),
		Value: payload,
	})
	if err != nil {
		log.Println("unable to publish order event:", err)
	}
}
