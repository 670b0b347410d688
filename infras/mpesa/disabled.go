package mpesa

import (
	"context"

	"tourismrelay/shared/failure"
)

type disabledProvider struct{}

// NewDisabled returns a Provider that rejects every call with
// failure.ErrProviderNotConfigured.
func NewDisabled() Provider {
	return disabledProvider{}
}

func (disabledProvider) Token(context.Context) (Token, error) {
	return Token{}, failure.ErrProviderNotConfigured
}

func (disabledProvider) RegisterURLs(context.Context) (RegisterResponse, error) {
	return RegisterResponse{}, failure.ErrProviderNotConfigured
}

func (disabledProvider) InitiatePush(context.Context, PushRequest) (PushResponse, error) {
	return PushResponse{}, failure.ErrProviderNotConfigured
}

func (disabledProvider) QueryPush(context.Context, string) (PushStatus, error) {
	return PushStatus{}, failure.ErrProviderNotConfigured
}
