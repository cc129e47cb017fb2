package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, delivery *Delivery) error
	FindVerified(ctx context.Context, db *gorm.DB, event string, objectID string) (*Delivery, error)
}
