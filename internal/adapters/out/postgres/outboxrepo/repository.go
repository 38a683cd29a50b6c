package outboxrepo

import (
	"context"

	"pressing/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stages a new message in the same transaction as the state change.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves messages awaiting dispatch, oldest first.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Update saves the publication timestamp of a dispatched message.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Save(&dto).Error
}
