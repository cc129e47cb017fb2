package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Notification is the claim carried by an inbound webhook delivery. It is
// never trusted: the claimed status is re-checked against the API before the
// delivery is acknowledged.
type Notification struct {
	Event         string
	Category      string
	ClaimedStatus string
	ObjectID      string
}

// Delivery outcomes.
const (
	OutcomeVerified  = "verified"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
)

// Reject reasons recorded with a delivery.
const (
	ReasonInvalidPayload = "invalid_payload"
	ReasonUnknownEvent   = "unknown_event"
	ReasonFetchFailed    = "fetch_failed"
	ReasonStatusMismatch = "status_mismatch"
)

// Delivery is the audit record of one webhook delivery, verified or not.
// The payment objects themselves are never persisted; only the delivery
// envelope and the verification outcome are.
type Delivery struct {
	ID           snowflake.ID   `gorm:"primaryKey"`
	Event        string         `gorm:"type:text;not null;index:idx_webhook_deliveries_event_object"`
	ObjectID     string         `gorm:"type:text;not null;index:idx_webhook_deliveries_event_object"`
	Outcome      string         `gorm:"type:text;not null"`
	RejectReason string         `gorm:"type:text"`
	Payload      datatypes.JSON `gorm:"not null"`
	ReceivedAt   time.Time      `gorm:"not null"`
	VerifiedAt   *time.Time
}

// TableName sets the database table name.
func (Delivery) TableName() string { return "webhook_deliveries" }
