package notifier

import (
	"context"

	"tourismrelay/shared/logger"
)

type logNotifier struct{}

// NewLog returns a Notifier that writes every message to the application
// log. It stands in for an SMS or mail gateway.
func NewLog() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(_ context.Context, recipient Recipient, message string) Outcome {
	l := logger.Channel(string(recipient.Channel))

	l.Info().
		Str("to", recipient.Address).
		Str("subject", recipient.Subject).
		Str("message", message).
		Msg("notification delivered")

	return Outcome{Delivered: true}
}
