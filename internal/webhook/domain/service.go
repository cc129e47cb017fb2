package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidPayload = errors.New("invalid_payload")
	ErrUnknownEvent   = errors.New("unknown_event")
	ErrFetchFailed    = errors.New("fetch_failed")
	ErrStatusMismatch = errors.New("status_mismatch")
)

// Service verifies inbound webhook notifications against the payment API.
// A nil error means the delivery may be acknowledged with 200.
type Service interface {
	Verify(ctx context.Context, payload []byte) error
}

// StatusFetcher looks up the authoritative status of the object a
// notification claims to describe.
type StatusFetcher interface {
	PaymentStatus(ctx context.Context, id string) (string, error)
	RefundStatus(ctx context.Context, id string) (string, error)
}
