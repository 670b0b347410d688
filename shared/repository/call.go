package repository

import (
	"context"
	"time"

	"tourismrelay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	DefaultCallTimeout = 5 * time.Second

	MsgStoreUnavailable = "store unavailable"
)

// CallTimeout converts a configured number of seconds, falling back to
// DefaultCallTimeout when unset.
func CallTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return DefaultCallTimeout
	}

	return time.Duration(seconds) * time.Second
}

// Call bounds one store call by timeout and reports any failure as Unavailable.
func Call[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := fn(c)
	if err != nil {
		log.Error().Err(err).Dur("timeout", timeout).Msg(MsgStoreUnavailable)

		return res, failure.Unavailable(MsgStoreUnavailable, err) // nolint:wrapcheck
	}

	return res, nil
}
