package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tachyon322/yookassa-go/internal/webhook/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return repository{}
}

func (repository) Insert(ctx context.Context, db *gorm.DB, delivery *domain.Delivery) error {
	return db.WithContext(ctx).Create(delivery).Error
}

func (repository) FindVerified(ctx context.Context, db *gorm.DB, event string, objectID string) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := db.WithContext(ctx).
		Where("event = ? AND object_id = ? AND outcome = ?", event, objectID, domain.OutcomeVerified).
		Order("received_at DESC").
		First(&delivery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}
