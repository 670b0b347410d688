package memstore

import (
	"context"
	"sync"
	"time"

	"tourismrelay/infras/notifier"
)

var _ notifier.Notifier = (*Outbox)(nil)

type Sent struct {
	Recipient notifier.Recipient
	Message   string
}

// Outbox records notifications instead of delivering them.
type Outbox struct {
	mu   sync.Mutex
	sent []Sent
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Notify(_ context.Context, recipient notifier.Recipient, message string) notifier.Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.sent = append(o.sent, Sent{Recipient: recipient, Message: message})

	return notifier.Outcome{Delivered: true}
}

func (o *Outbox) Sent() []Sent {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]Sent(nil), o.sent...)
}

// To returns what was sent on channel, in order.
func (o *Outbox) To(channel notifier.Channel) []Sent {
	var res []Sent

	for _, s := range o.Sent() {
		if s.Recipient.Channel == channel {
			res = append(res, s)
		}
	}

	return res
}

// Wait polls until n notifications were recorded or timeout passes, and
// reports whether it got there. Notifications are sent from goroutines.
func (o *Outbox) Wait(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for {
		if len(o.Sent()) >= n {
			return true
		}

		if time.Now().After(deadline) {
			return false
		}

		time.Sleep(5 * time.Millisecond)
	}
}
