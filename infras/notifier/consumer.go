package notifier

import (
	"context"

	"tourismrelay/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Handler decodes queued events and hands them to delivery. Undecodable
// events are dropped; failed deliveries are retried by the consumer.
func Handler(delivery Notifier) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.Decode[Event](message)
		if err != nil {
			return nil
		}

		return delivery.Notify(ctx, event.Recipient, event.Message).Err
	}
}
