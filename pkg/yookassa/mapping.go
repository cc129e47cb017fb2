package yookassa

import (
	"time"
)

var paymentKnownFields = map[string]struct{}{
	"id":                   {},
	"status":               {},
	"amount":               {},
	"paid":                 {},
	"created_at":           {},
	"description":          {},
	"confirmation":         {},
	"test":                 {},
	"refunded_amount":      {},
	"receipt_registration": {},
	"metadata":             {},
}

var refundKnownFields = map[string]struct{}{
	"id":                           {},
	"status":                       {},
	"amount":                       {},
	"payment_id":                   {},
	"created_at":                   {},
	"cancellation_details":         {},
	"refund_authorization_details": {},
}

// PaymentFromMap builds a Payment snapshot from a decoded response object.
// id, status, amount and paid are mandatory; everything else is optional and
// unknown keys land in Extra untouched.
func PaymentFromMap(data map[string]any) (*Payment, error) {
	id, ok := stringField(data, "id")
	if !ok {
		return nil, &MappingError{Object: "payment", Field: "id"}
	}
	status, ok := stringField(data, "status")
	if !ok {
		return nil, &MappingError{Object: "payment", Field: "status"}
	}
	amount, ok := amountField(data, "amount")
	if !ok {
		return nil, &MappingError{Object: "payment", Field: "amount"}
	}
	paid, ok := data["paid"].(bool)
	if !ok {
		return nil, &MappingError{Object: "payment", Field: "paid"}
	}

	p := &Payment{
		ID:     id,
		Status: status,
		Amount: amount,
		Paid:   paid,
	}

	if created, ok := stringField(data, "created_at"); ok {
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			p.CreatedAt = ts
		}
	}
	if desc, ok := stringField(data, "description"); ok {
		p.Description = desc
	}
	if conf, ok := data["confirmation"].(map[string]any); ok {
		confType, _ := stringField(conf, "type")
		returnURL, _ := stringField(conf, "return_url")
		confURL, _ := stringField(conf, "confirmation_url")
		p.Confirmation = &Confirmation{Type: confType, ReturnURL: returnURL, ConfirmationURL: confURL}
	}
	if test, ok := data["test"].(bool); ok {
		p.Test = test
	}
	if refunded, ok := amountField(data, "refunded_amount"); ok {
		p.RefundedAmount = &refunded
	}
	if receipt, ok := stringField(data, "receipt_registration"); ok {
		p.ReceiptRegistration = receipt
	}
	if metadata, ok := data["metadata"].(map[string]any); ok {
		p.Metadata = metadata
	}
	p.Extra = extraFields(data, paymentKnownFields)

	return p, nil
}

// RefundFromMap builds a Refund snapshot. id, status, amount, payment_id and
// created_at are mandatory.
func RefundFromMap(data map[string]any) (*Refund, error) {
	id, ok := stringField(data, "id")
	if !ok {
		return nil, &MappingError{Object: "refund", Field: "id"}
	}
	status, ok := stringField(data, "status")
	if !ok {
		return nil, &MappingError{Object: "refund", Field: "status"}
	}
	amount, ok := amountField(data, "amount")
	if !ok {
		return nil, &MappingError{Object: "refund", Field: "amount"}
	}
	paymentID, ok := stringField(data, "payment_id")
	if !ok {
		return nil, &MappingError{Object: "refund", Field: "payment_id"}
	}
	created, ok := stringField(data, "created_at")
	if !ok {
		return nil, &MappingError{Object: "refund", Field: "created_at"}
	}

	r := &Refund{
		ID:        id,
		Status:    status,
		Amount:    amount,
		PaymentID: paymentID,
	}
	if ts, err := time.Parse(time.RFC3339, created); err == nil {
		r.CreatedAt = ts
	}

	if details, ok := data["cancellation_details"].(map[string]any); ok {
		party, _ := stringField(details, "party")
		reason, _ := stringField(details, "reason")
		r.CancellationDetails = &CancellationDetails{Party: party, Reason: reason}
	}
	if auth, ok := data["refund_authorization_details"].(map[string]any); ok {
		r.RefundAuthorizationDetails = auth
	}
	r.Extra = extraFields(data, refundKnownFields)

	return r, nil
}

func stringField(data map[string]any, key string) (string, bool) {
	value, ok := data[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func amountField(data map[string]any, key string) (Amount, bool) {
	raw, ok := data[key].(map[string]any)
	if !ok {
		return Amount{}, false
	}
	value, ok := stringField(raw, "value")
	if !ok {
		return Amount{}, false
	}
	currency, ok := stringField(raw, "currency")
	if !ok {
		return Amount{}, false
	}
	return Amount{Value: value, Currency: currency}, true
}

func extraFields(data map[string]any, known map[string]struct{}) map[string]any {
	var extra map[string]any
	for key, value := range data {
		if _, ok := known[key]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = value
	}
	return extra
}
