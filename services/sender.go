package services

import (
	"context"

	"paygate/entity"
)

// Sender posts a payload to a gateway endpoint and returns the raw body.
type Sender interface {
	Send(ctx context.Context, endpoint string, headers map[string]string, payload *entity.Payload) ([]byte, error)
}

// Gateway is the request pipeline exposed to the provider facades.
type Gateway interface {
	Execute(ctx context.Context, operation string, options entity.Options) entity.Outcome
	VerifyIPN(ctx context.Context, notification *entity.Payload) entity.Outcome
}
