package yookassa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newBodyCapturingServer(t *testing.T, status int, response string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		*captured = body
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, ShopID: "shop-1", SecretKey: "secret-key"})
}

func TestCreatePaymentBuildsDefaultBody(t *testing.T) {
	var captured map[string]any
	srv := newBodyCapturingServer(t, http.StatusOK, `{"id":"p-1","status":"pending"}`, &captured)
	defer srv.Close()

	result, err := testClient(srv.URL).CreatePayment(context.Background(), CreatePaymentParams{
		Value:       decimal.NewFromInt(100),
		Currency:    "RUB",
		ReturnURL:   "https://shop.example/return",
		Description: "order 42",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if result["id"] != "p-1" {
		t.Fatalf("expected raw decoded body, got %v", result)
	}

	amount, _ := captured["amount"].(map[string]any)
	if amount["value"] != "100.00" || amount["currency"] != "RUB" {
		t.Fatalf("expected amount 100.00 RUB, got %v", amount)
	}
	confirmation, _ := captured["confirmation"].(map[string]any)
	if confirmation["type"] != "redirect" || confirmation["return_url"] != "https://shop.example/return" {
		t.Fatalf("expected redirect confirmation, got %v", confirmation)
	}
	if captured["capture"] != true {
		t.Fatalf("expected capture true by default, got %v", captured["capture"])
	}
	if captured["description"] != "order 42" {
		t.Fatalf("expected description, got %v", captured["description"])
	}
}

func TestCreatePaymentOverridesWin(t *testing.T) {
	var captured map[string]any
	srv := newBodyCapturingServer(t, http.StatusOK, `{}`, &captured)
	defer srv.Close()

	_, err := testClient(srv.URL).CreatePayment(context.Background(), CreatePaymentParams{
		Value:     decimal.NewFromFloat(19.9),
		Currency:  "RUB",
		ReturnURL: "https://shop.example/return",
		Overrides: map[string]any{
			"capture":     false,
			"description": "replaced",
		},
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if captured["capture"] != false {
		t.Fatalf("expected caller override capture=false, got %v", captured["capture"])
	}
	if captured["description"] != "replaced" {
		t.Fatalf("expected caller override description, got %v", captured["description"])
	}
	amount, _ := captured["amount"].(map[string]any)
	if amount["value"] != "19.90" {
		t.Fatalf("expected two-digit decimal string, got %v", amount["value"])
	}
}

func TestCapturePaymentBody(t *testing.T) {
	var captured map[string]any
	srv := newBodyCapturingServer(t, http.StatusOK, `{}`, &captured)
	defer srv.Close()

	client := testClient(srv.URL)

	if _, err := client.CapturePayment(context.Background(), "p-1", nil); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(captured) != 0 {
		t.Fatalf("expected empty body for full capture, got %v", captured)
	}

	amount := Amount{Value: "50.00", Currency: "EUR"}
	if _, err := client.CapturePayment(context.Background(), "p-1", &amount); err != nil {
		t.Fatalf("partial capture: %v", err)
	}
	sent, _ := captured["amount"].(map[string]any)
	if sent["value"] != "50.00" || sent["currency"] != "EUR" {
		t.Fatalf("expected amount sent verbatim, got %v", sent)
	}
	if len(captured) != 1 {
		t.Fatalf("expected only amount in partial capture body, got %v", captured)
	}
}

func TestCancelPaymentSendsEmptyBody(t *testing.T) {
	var captured map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).CancelPayment(context.Background(), "p-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if path != "/payments/p-1/cancel" {
		t.Fatalf("expected cancel path, got %s", path)
	}
	if len(captured) != 0 {
		t.Fatalf("expected empty body, got %v", captured)
	}
}

func TestGetPaymentInfoMapsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/p-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": "p-1",
			"status": "succeeded",
			"amount": {"value": "100.00", "currency": "RUB"},
			"paid": true,
			"created_at": "2024-01-15T10:00:00Z",
			"description": "order 42"
		}`))
	}))
	defer srv.Close()

	payment, err := testClient(srv.URL).GetPaymentInfo(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.ID != "p-1" || payment.Status != PaymentStatusSucceeded || !payment.Paid {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if payment.Amount.Value != "100.00" || payment.Amount.Currency != "RUB" {
		t.Fatalf("unexpected amount %+v", payment.Amount)
	}
}

func TestNon200BecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPaymentInfo(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", apiErr.StatusCode)
	}
	if string(apiErr.Body) != `{"code":"not_found"}` {
		t.Fatalf("expected raw error body, got %s", apiErr.Body)
	}
}

func TestTransportFailureBecomesUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).GetPaymentInfo(context.Background(), "p-1")
	var unknown *UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownError for connection failure, got %v", err)
	}
}

func TestNewAmountFormatsDecimals(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(100), "100.00"},
		{decimal.NewFromFloat(19.9), "19.90"},
		{decimal.NewFromFloat(0.05), "0.05"},
	}
	for _, tc := range cases {
		got := NewAmount(tc.in, "rub")
		if got.Value != tc.want {
			t.Fatalf("NewAmount(%s) = %q, want %q", tc.in, got.Value, tc.want)
		}
		if got.Currency != "RUB" {
			t.Fatalf("expected upper-cased currency, got %q", got.Currency)
		}
	}
}
