package notifier

import (
	"context"
	"fmt"

	"tourismrelay/infras/kafka"
	"tourismrelay/infras/otel"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/timezone"

	"github.com/rs/zerolog/log"
)

type kafkaNotifier struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewKafka returns a Notifier that publishes an Event per message; cmd/notifier
// consumes the topic and performs delivery.
func NewKafka(client kafka.Client, topic string, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		topic:  topic,
		otel:   otel,
	}
}

func (k *kafkaNotifier) Notify(ctx context.Context, recipient Recipient, message string) (outcome Outcome) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelNotifierScopeName, constant.OtelNotifierScopeName+".Notify")
	defer scope.End()

	scope.SetAttribute("notifier.channel", string(recipient.Channel))

	event := Event{
		Recipient: recipient,
		Message:   message,
		QueuedAt:  timezone.Now(),
	}

	err := k.client.SendMessages(ctx, k.topic, kafka.Message{Key: recipient.Address, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("channel", string(recipient.Channel)).Msg("failed to queue notification")

		return Outcome{Err: fmt.Errorf("failed to queue notification: %w", err)}
	}

	return Outcome{Delivered: true}
}
