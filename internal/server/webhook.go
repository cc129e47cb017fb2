package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tachyon322/yookassa-go/internal/observability/logger"
	webhookdomain "github.com/tachyon322/yookassa-go/internal/webhook/domain"
)

// HandleWebhook receives a notification delivery. 200 "OK" acknowledges it
// and stops the sender's redelivery policy; 400 signals the sender to retry
// later, which is also the correct answer for spoofed or stale payloads.
func (s *Server) HandleWebhook(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": webhookdomain.ReasonInvalidPayload})
		return
	}

	ctx := c.Request.Context()
	if err := s.webhookSvc.Verify(ctx, payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": rejectReason(err)})
		return
	}

	logger.FromContext(ctx).Debug("webhook acknowledged", zap.Int("payload_bytes", len(payload)))
	c.String(http.StatusOK, "OK")
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, webhookdomain.ErrInvalidPayload):
		return webhookdomain.ReasonInvalidPayload
	case errors.Is(err, webhookdomain.ErrUnknownEvent):
		return webhookdomain.ReasonUnknownEvent
	case errors.Is(err, webhookdomain.ErrFetchFailed):
		return webhookdomain.ReasonFetchFailed
	case errors.Is(err, webhookdomain.ErrStatusMismatch):
		return webhookdomain.ReasonStatusMismatch
	default:
		return "verification_failed"
	}
}
