package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tachyon322/yookassa-go/internal/cache"
	"github.com/tachyon322/yookassa-go/internal/clock"
	"github.com/tachyon322/yookassa-go/internal/observability/metrics"
	"github.com/tachyon322/yookassa-go/internal/webhook/domain"
)

// dedupTTL bounds how long a verified delivery suppresses identical
// redeliveries via the in-memory fast path. The database check behind it has
// no TTL.
const dedupTTL = 15 * time.Minute

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Fetcher domain.StatusFetcher
	Repo    domain.Repository
	Metrics *metrics.WebhookMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	fetcher domain.StatusFetcher
	repo    domain.Repository
	metrics *metrics.WebhookMetrics
	dedup   *cache.TTLCache[string, struct{}]
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("webhook.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		fetcher: p.Fetcher,
		repo:    p.Repo,
		metrics: p.Metrics,
		dedup:   cache.NewTTLCache[string, struct{}](4096),
	}
}

// Verify runs a delivery through parse, event-split, and authoritative
// status comparison. The claimed status embedded in the payload is never
// trusted on its own: notifications arrive unauthenticated on a public
// endpoint, so acceptance always requires a matching fetch from the API.
func (s *Service) Verify(ctx context.Context, payload []byte) error {
	notification, err := parseNotification(payload)
	if err != nil {
		s.recordRejection(ctx, payload, notification, domain.ReasonInvalidPayload)
		return err
	}

	if notification.Category != "payment" && notification.Category != "refund" {
		s.recordRejection(ctx, payload, notification, domain.ReasonUnknownEvent)
		return domain.ErrUnknownEvent
	}

	if s.alreadyVerified(ctx, notification) {
		s.log.Debug("duplicate delivery acknowledged",
			zap.String("event", notification.Event),
			zap.String("object_id", notification.ObjectID),
		)
		s.metrics.RecordDelivery(domain.OutcomeDuplicate, "")
		s.recordDelivery(ctx, payload, notification, domain.OutcomeDuplicate, "", nil)
		return nil
	}

	start := s.clock.Now()
	status, err := s.fetchStatus(ctx, notification)
	s.metrics.RecordVerification(s.clock.Now().Sub(start))
	if err != nil {
		s.log.Warn("authoritative fetch failed",
			zap.String("event", notification.Event),
			zap.String("object_id", notification.ObjectID),
			zap.Error(err),
		)
		s.recordRejection(ctx, payload, notification, domain.ReasonFetchFailed)
		return domain.ErrFetchFailed
	}

	if status != notification.ClaimedStatus {
		s.log.Warn("notification status mismatch",
			zap.String("event", notification.Event),
			zap.String("object_id", notification.ObjectID),
			zap.String("claimed", notification.ClaimedStatus),
			zap.String("authoritative", status),
		)
		s.recordRejection(ctx, payload, notification, domain.ReasonStatusMismatch)
		return domain.ErrStatusMismatch
	}

	verifiedAt := s.clock.Now()
	s.metrics.RecordDelivery(domain.OutcomeVerified, "")
	s.recordDelivery(ctx, payload, notification, domain.OutcomeVerified, "", &verifiedAt)
	s.dedup.Set(dedupKey(notification), struct{}{}, dedupTTL)
	return nil
}

func parseNotification(payload []byte) (*domain.Notification, error) {
	var envelope struct {
		Event  string         `json:"event"`
		Object map[string]any `json:"object"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	event := strings.TrimSpace(envelope.Event)
	objectID, _ := envelope.Object["id"].(string)
	objectID = strings.TrimSpace(objectID)
	if event == "" || objectID == "" {
		return nil, domain.ErrInvalidPayload
	}

	notification := &domain.Notification{
		Event:    event,
		ObjectID: objectID,
	}
	if category, status, ok := strings.Cut(event, "."); ok {
		notification.Category = category
		notification.ClaimedStatus = status
	}
	return notification, nil
}

func (s *Service) fetchStatus(ctx context.Context, notification *domain.Notification) (string, error) {
	if notification.Category == "refund" {
		return s.fetcher.RefundStatus(ctx, notification.ObjectID)
	}
	return s.fetcher.PaymentStatus(ctx, notification.ObjectID)
}

func (s *Service) alreadyVerified(ctx context.Context, notification *domain.Notification) bool {
	if _, ok := s.dedup.Get(dedupKey(notification)); ok {
		return true
	}
	delivery, err := s.repo.FindVerified(ctx, s.db, notification.Event, notification.ObjectID)
	if err != nil {
		s.log.Warn("delivery lookup failed", zap.Error(err))
		return false
	}
	return delivery != nil
}

func (s *Service) recordRejection(ctx context.Context, payload []byte, notification *domain.Notification, reason string) {
	s.metrics.RecordDelivery(domain.OutcomeRejected, reason)
	s.recordDelivery(ctx, payload, notification, domain.OutcomeRejected, reason, nil)
}

// recordDelivery audits the delivery outcome. Failures are logged and
// swallowed: the audit trail must never change the HTTP answer the sender
// sees, or redelivery behavior would depend on local storage health.
func (s *Service) recordDelivery(ctx context.Context, payload []byte, notification *domain.Notification, outcome string, reason string, verifiedAt *time.Time) {
	delivery := &domain.Delivery{
		ID:           s.genID.Generate(),
		Outcome:      outcome,
		RejectReason: reason,
		Payload:      datatypes.JSON(payload),
		ReceivedAt:   s.clock.Now(),
		VerifiedAt:   verifiedAt,
	}
	if notification != nil {
		delivery.Event = notification.Event
		delivery.ObjectID = notification.ObjectID
	}
	if err := s.repo.Insert(ctx, s.db, delivery); err != nil {
		s.log.Warn("failed to record webhook delivery",
			zap.String("outcome", outcome),
			zap.Error(err),
		)
	}
}

func dedupKey(notification *domain.Notification) string {
	return notification.Event + "|" + notification.ObjectID
}
