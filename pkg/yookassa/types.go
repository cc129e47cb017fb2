package yookassa

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses reported by the API.
const (
	PaymentStatusPending           = "pending"
	PaymentStatusWaitingForCapture = "waiting_for_capture"
	PaymentStatusSucceeded         = "succeeded"
	PaymentStatusCanceled          = "canceled"
)

// Refund statuses reported by the API.
const (
	RefundStatusPending   = "pending"
	RefundStatusSucceeded = "succeeded"
	RefundStatusCanceled  = "canceled"
)

// Amount is a monetary value as the API represents it: a decimal string with
// a "." separator and a 3-letter ISO currency code.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// NewAmount formats a decimal into the two-digit string form the API expects.
func NewAmount(value decimal.Decimal, currency string) Amount {
	return Amount{
		Value:    value.StringFixed(2),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// Confirmation describes how the payer completes a payment.
type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// CancellationDetails explains why a payment or refund was canceled.
type CancellationDetails struct {
	Party  string `json:"party"`
	Reason string `json:"reason"`
}

// Payment is a read-only snapshot of a payment object. It is never persisted
// locally; the remote API owns all state transitions.
type Payment struct {
	ID                  string
	Status              string
	Amount              Amount
	Paid                bool
	CreatedAt           time.Time
	Description         string
	Confirmation        *Confirmation
	Test                bool
	RefundedAmount      *Amount
	ReceiptRegistration string
	Metadata            map[string]any

	// Extra holds response fields this library does not model, preserved so
	// API additions are not silently dropped.
	Extra map[string]any
}

// Refund is a read-only snapshot of a refund object.
type Refund struct {
	ID                         string
	Status                     string
	Amount                     Amount
	PaymentID                  string
	CreatedAt                  time.Time
	CancellationDetails        *CancellationDetails
	RefundAuthorizationDetails map[string]any

	Extra map[string]any
}
