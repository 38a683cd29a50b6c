// Package webhookrepo persists the ledger of processed payment-provider
// webhook events. The event id is the primary key, so replaying a delivery
// collides on insert and the reconciler can acknowledge without reapplying.
package webhookrepo

import (
	"context"
	"errors"
	"time"

	"pressing/internal/core/ports"

	"gorm.io/gorm"
)

// ProcessedEventDTO represents one processed webhook delivery.
type ProcessedEventDTO struct {
	EventID    string `gorm:"primaryKey"`
	EventType  string
	ReceivedAt time.Time
}

// TableName specifies the database table name for processed webhook events.
func (ProcessedEventDTO) TableName() string {
	return "processed_webhook_events"
}

// GormWebhookEventRepository implements ports.WebhookEventRepository using GORM.
// Requires the connection to be opened with TranslateError so duplicate-key
// violations surface as gorm.ErrDuplicatedKey.
type GormWebhookEventRepository struct {
	db *gorm.DB
}

// NewGormWebhookEventRepository creates a new GORM webhook event repository.
func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

// Record inserts the event into the ledger. A second delivery of the same
// event id returns ports.ErrWebhookEventAlreadyProcessed.
func (r *GormWebhookEventRepository) Record(ctx context.Context, eventID, eventType string, receivedAt time.Time) error {
	dto := ProcessedEventDTO{
		EventID:    eventID,
		EventType:  eventType,
		ReceivedAt: receivedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrWebhookEventAlreadyProcessed
		}
		return err
	}
	return nil
}
