// Package notifier delivers steward SMS and tourist email on a best-effort
// basis. Callers never block state changes on an Outcome.
package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/kafka"
	"tourismrelay/infras/otel"
)

type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

type Recipient struct {
	Channel Channel `json:"channel"`
	Address string  `json:"address"`
	Subject string  `json:"subject,omitempty"`
}

func SMS(phone string) Recipient {
	return Recipient{Channel: ChannelSMS, Address: phone}
}

func Email(address, subject string) Recipient {
	return Recipient{Channel: ChannelEmail, Address: address, Subject: subject}
}

// Outcome reports what happened to one notification.
type Outcome struct {
	Delivered bool
	Err       error
}

// Event is the queued form of a notification.
type Event struct {
	Recipient Recipient `json:"recipient"`
	Message   string    `json:"message"`
	QueuedAt  time.Time `json:"queued_at"`
}

type Notifier interface {
	Notify(ctx context.Context, recipient Recipient, message string) Outcome
}

// New queues notifications on Kafka when enabled, otherwise writes them to the log.
func New(config *config.Config, client kafka.Client, otel otel.Otel) Notifier {
	if config.Kafka.Enable && client != nil {
		return NewKafka(client, config.Kafka.Topic, otel)
	}

	return NewLog()
}

// Send runs Notify in the background so the caller's request is not held up.
func Send(ctx context.Context, n Notifier, recipient Recipient, message string) {
	go func() {
		c := context.WithoutCancel(ctx)

		n.Notify(c, recipient, message)
	}()
}
