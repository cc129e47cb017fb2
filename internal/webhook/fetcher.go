package webhook

import (
	"context"

	"github.com/tachyon322/yookassa-go/internal/webhook/domain"
	"github.com/tachyon322/yookassa-go/pkg/yookassa"
)

type apiFetcher struct {
	client *yookassa.Client
}

// NewStatusFetcher adapts the API client to the verifier's lookup contract.
func NewStatusFetcher(client *yookassa.Client) domain.StatusFetcher {
	return apiFetcher{client: client}
}

func (f apiFetcher) PaymentStatus(ctx context.Context, id string) (string, error) {
	payment, err := f.client.GetPaymentInfo(ctx, id)
	if err != nil {
		return "", err
	}
	return payment.Status, nil
}

func (f apiFetcher) RefundStatus(ctx context.Context, id string) (string, error) {
	refund, err := f.client.GetRefundInfo(ctx, id)
	if err != nil {
		return "", err
	}
	return refund.Status, nil
}
