package yookassa

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateRefund refunds part or all of a succeeded payment via POST /refunds.
// Preconditions (payment succeeded, remaining balance, remote minimum) are
// validated by the API, not here; violations come back as an *APIError.
func (c *Client) CreateRefund(ctx context.Context, paymentID string, value decimal.Decimal, currency string) (map[string]any, error) {
	body := map[string]any{
		"amount":     NewAmount(value, currency),
		"payment_id": paymentID,
	}
	return c.postAndDecode(ctx, "/refunds", body)
}

// GetRefundInfo fetches the authoritative refund snapshot.
func (c *Client) GetRefundInfo(ctx context.Context, refundID string) (*Refund, error) {
	data, err := c.getAndDecode(ctx, "/refunds/"+refundID)
	if err != nil {
		return nil, err
	}
	refund, err := RefundFromMap(data)
	if err != nil {
		return nil, unknownErr(err)
	}
	return refund, nil
}
