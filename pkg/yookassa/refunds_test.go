package yookassa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateRefundBody(t *testing.T) {
	var captured map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"id":"r-1","status":"pending"}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).CreateRefund(context.Background(), "p-1", decimal.NewFromFloat(25.5), "RUB")
	if err != nil {
		t.Fatalf("create refund: %v", err)
	}
	if path != "/refunds" {
		t.Fatalf("expected /refunds, got %s", path)
	}
	if result["id"] != "r-1" {
		t.Fatalf("expected raw decoded body, got %v", result)
	}
	if captured["payment_id"] != "p-1" {
		t.Fatalf("expected payment_id, got %v", captured["payment_id"])
	}
	amount, _ := captured["amount"].(map[string]any)
	if amount["value"] != "25.50" || amount["currency"] != "RUB" {
		t.Fatalf("unexpected amount %v", amount)
	}
}

func TestGetRefundInfoMapsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refunds/r-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": "r-1",
			"status": "canceled",
			"amount": {"value": "25.50", "currency": "RUB"},
			"payment_id": "p-1",
			"created_at": "2024-01-15T10:00:00Z",
			"cancellation_details": {"party": "yoo_money", "reason": "rejected_by_payee"}
		}`))
	}))
	defer srv.Close()

	refund, err := testClient(srv.URL).GetRefundInfo(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("get refund: %v", err)
	}
	if refund.ID != "r-1" || refund.Status != RefundStatusCanceled || refund.PaymentID != "p-1" {
		t.Fatalf("unexpected refund %+v", refund)
	}
	if refund.CancellationDetails == nil || refund.CancellationDetails.Reason != "rejected_by_payee" {
		t.Fatalf("expected cancellation details, got %+v", refund.CancellationDetails)
	}
}
