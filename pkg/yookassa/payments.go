package yookassa

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// CreatePaymentParams describes a payment-creation request. Value and
// Currency form the amount; ReturnURL is where the payer lands after the
// redirect confirmation step.
type CreatePaymentParams struct {
	Value       decimal.Decimal
	Currency    string
	ReturnURL   string
	Description string

	// Overrides is shallow-merged over the built request body last, so the
	// caller wins on any key collision. Setting "capture" to false switches
	// the payment to the two-stage authorize-then-capture flow.
	Overrides map[string]any
}

// CreatePayment creates a payment via POST /payments. On HTTP 200 the raw
// decoded body is returned; the payment may still be pending confirmation,
// so callers read confirmation.confirmation_url from it to redirect payers.
func (c *Client) CreatePayment(ctx context.Context, params CreatePaymentParams) (map[string]any, error) {
	body := map[string]any{
		"amount": NewAmount(params.Value, params.Currency),
		"confirmation": map[string]any{
			"type":       "redirect",
			"return_url": params.ReturnURL,
		},
		"description": params.Description,
		"capture":     true,
	}
	for key, value := range params.Overrides {
		body[key] = value
	}

	return c.postAndDecode(ctx, "/payments", body)
}

// CapturePayment confirms an authorized payment. A nil amount captures the
// full held sum with body {}; a non-nil amount is sent verbatim for partial
// capture. The caller supplies a complete Amount; no currency is guessed.
func (c *Client) CapturePayment(ctx context.Context, paymentID string, amount *Amount) (map[string]any, error) {
	body := map[string]any{}
	if amount != nil {
		body["amount"] = *amount
	}
	return c.postAndDecode(ctx, "/payments/"+paymentID+"/capture", body)
}

// CancelPayment releases an authorization hold. It never refunds captured
// funds; use CreateRefund for that.
func (c *Client) CancelPayment(ctx context.Context, paymentID string) (map[string]any, error) {
	return c.postAndDecode(ctx, "/payments/"+paymentID+"/cancel", map[string]any{})
}

// GetPaymentInfo fetches the authoritative payment snapshot.
func (c *Client) GetPaymentInfo(ctx context.Context, paymentID string) (*Payment, error) {
	data, err := c.getAndDecode(ctx, "/payments/"+paymentID)
	if err != nil {
		return nil, err
	}
	payment, err := PaymentFromMap(data)
	if err != nil {
		return nil, unknownErr(err)
	}
	return payment, nil
}

func (c *Client) postAndDecode(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	resp, err := c.Post(ctx, path, body)
	if err != nil {
		return nil, normalizeTransportErr(err)
	}
	return decodeResult(resp)
}

func (c *Client) getAndDecode(ctx context.Context, path string) (map[string]any, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, normalizeTransportErr(err)
	}
	return decodeResult(resp)
}

func decodeResult(resp *RawResponse) (map[string]any, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	var decoded map[string]any
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, unknownErr(err)
	}
	return decoded, nil
}

func normalizeTransportErr(err error) error {
	if err == ErrMissingCredentials {
		return err
	}
	return unknownErr(err)
}
