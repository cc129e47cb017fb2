package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tachyon322/yookassa-go/internal/clock"
	"github.com/tachyon322/yookassa-go/internal/webhook/domain"
	"github.com/tachyon322/yookassa-go/internal/webhook/repository"
)

type fakeFetcher struct {
	paymentStatus string
	refundStatus  string
	err           error

	paymentCalls int
	refundCalls  int
}

func (f *fakeFetcher) PaymentStatus(ctx context.Context, id string) (string, error) {
	f.paymentCalls++
	return f.paymentStatus, f.err
}

func (f *fakeFetcher) RefundStatus(ctx context.Context, id string) (string, error) {
	f.refundCalls++
	return f.refundStatus, f.err
}

var testDBSeq atomic.Int64

func setupServiceTest(t *testing.T, fetcher *fakeFetcher) (domain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:webhooktest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Delivery{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := NewService(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clock.FixedClock{Instant: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		Fetcher: fetcher,
		Repo:    repository.Provide(),
	})
	return svc, db
}

func loadDeliveries(t *testing.T, db *gorm.DB) []domain.Delivery {
	t.Helper()
	var deliveries []domain.Delivery
	if err := db.Order("id").Find(&deliveries).Error; err != nil {
		t.Fatalf("load deliveries: %v", err)
	}
	return deliveries
}

func TestVerifyAcceptsMatchingPaymentStatus(t *testing.T) {
	fetcher := &fakeFetcher{paymentStatus: "succeeded"}
	svc, db := setupServiceTest(t, fetcher)

	err := svc.Verify(context.Background(), []byte(`{"event":"payment.succeeded","object":{"id":"p-1"}}`))
	if err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
	if fetcher.paymentCalls != 1 {
		t.Fatalf("expected 1 payment fetch, got %d", fetcher.paymentCalls)
	}

	deliveries := loadDeliveries(t, db)
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery row, got %d", len(deliveries))
	}
	if deliveries[0].Outcome != domain.OutcomeVerified {
		t.Fatalf("expected verified outcome, got %s", deliveries[0].Outcome)
	}
	if deliveries[0].VerifiedAt == nil {
		t.Fatalf("expected verified_at set")
	}
}

func TestVerifyRejectsStatusMismatch(t *testing.T) {
	fetcher := &fakeFetcher{paymentStatus: "pending"}
	svc, db := setupServiceTest(t, fetcher)

	err := svc.Verify(context.Background(), []byte(`{"event":"payment.succeeded","object":{"id":"p-1"}}`))
	if !errors.Is(err, domain.ErrStatusMismatch) {
		t.Fatalf("expected status mismatch, got %v", err)
	}

	deliveries := loadDeliveries(t, db)
	if len(deliveries) != 1 || deliveries[0].Outcome != domain.OutcomeRejected {
		t.Fatalf("expected rejected delivery row, got %+v", deliveries)
	}
	if deliveries[0].RejectReason != domain.ReasonStatusMismatch {
		t.Fatalf("expected status_mismatch reason, got %s", deliveries[0].RejectReason)
	}
}

func TestVerifyUsesRefundLookupForRefundEvents(t *testing.T) {
	fetcher := &fakeFetcher{refundStatus: "succeeded"}
	svc, _ := setupServiceTest(t, fetcher)

	err := svc.Verify(context.Background(), []byte(`{"event":"refund.succeeded","object":{"id":"r-1"}}`))
	if err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
	if fetcher.refundCalls != 1 || fetcher.paymentCalls != 0 {
		t.Fatalf("expected refund lookup only, got payment=%d refund=%d", fetcher.paymentCalls, fetcher.refundCalls)
	}
}

func TestVerifyRejectsUnknownCategoryWithoutFetching(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, db := setupServiceTest(t, fetcher)

	err := svc.Verify(context.Background(), []byte(`{"event":"deal.succeeded","object":{"id":"d-1"}}`))
	if !errors.Is(err, domain.ErrUnknownEvent) {
		t.Fatalf("expected unknown event, got %v", err)
	}
	if fetcher.paymentCalls != 0 || fetcher.refundCalls != 0 {
		t.Fatalf("expected no API lookup for unknown category")
	}

	deliveries := loadDeliveries(t, db)
	if len(deliveries) != 1 || deliveries[0].RejectReason != domain.ReasonUnknownEvent {
		t.Fatalf("expected unknown_event rejection recorded, got %+v", deliveries)
	}
}

func TestVerifyRejectsMalformedPayloadWithoutFetching(t *testing.T) {
	cases := map[string]string{
		"not json":      `{{`,
		"missing event": `{"object":{"id":"p-1"}}`,
		"missing id":    `{"event":"payment.succeeded","object":{}}`,
		"empty event":   `{"event":"","object":{"id":"p-1"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			svc, _ := setupServiceTest(t, fetcher)

			err := svc.Verify(context.Background(), []byte(payload))
			if !errors.Is(err, domain.ErrInvalidPayload) {
				t.Fatalf("expected invalid payload, got %v", err)
			}
			if fetcher.paymentCalls != 0 || fetcher.refundCalls != 0 {
				t.Fatalf("expected no API lookup for malformed payload")
			}
		})
	}
}

func TestVerifyRejectsWhenFetchFails(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc, db := setupServiceTest(t, fetcher)

	err := svc.Verify(context.Background(), []byte(`{"event":"payment.succeeded","object":{"id":"p-1"}}`))
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}

	deliveries := loadDeliveries(t, db)
	if len(deliveries) != 1 || deliveries[0].RejectReason != domain.ReasonFetchFailed {
		t.Fatalf("expected fetch_failed rejection recorded, got %+v", deliveries)
	}
}

func TestVerifyAcknowledgesDuplicateWithoutRefetching(t *testing.T) {
	fetcher := &fakeFetcher{paymentStatus: "succeeded"}
	svc, db := setupServiceTest(t, fetcher)

	payload := []byte(`{"event":"payment.succeeded","object":{"id":"p-1"}}`)
	if err := svc.Verify(context.Background(), payload); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.Verify(context.Background(), payload); err != nil {
		t.Fatalf("redelivery: %v", err)
	}

	if fetcher.paymentCalls != 1 {
		t.Fatalf("expected a single authoritative fetch, got %d", fetcher.paymentCalls)
	}

	deliveries := loadDeliveries(t, db)
	if len(deliveries) != 2 {
		t.Fatalf("expected both deliveries recorded, got %d", len(deliveries))
	}
	if deliveries[1].Outcome != domain.OutcomeDuplicate {
		t.Fatalf("expected duplicate outcome for redelivery, got %s", deliveries[1].Outcome)
	}
}
