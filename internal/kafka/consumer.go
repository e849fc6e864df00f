package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads TicketEvent payloads off a topic within a consumer group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func decodeEvent(value []byte) (TicketEvent, error) {
	var event TicketEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return TicketEvent{}, fmt.Errorf("decode ticket event: %w", err)
	}
	if event.Type == "" {
		return TicketEvent{}, fmt.Errorf("decode ticket event: missing type")
	}
	return event, nil
}

// Consume feeds decoded ticket events to the handler until the context is
// canceled or the handler fails. Payloads that do not decode as a
// TicketEvent are reported to onSkip and dropped rather than stopping the
// loop; a nil onSkip drops them silently.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, TicketEvent) error, onSkip func(error)) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			if onSkip != nil {
				onSkip(err)
			}
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
