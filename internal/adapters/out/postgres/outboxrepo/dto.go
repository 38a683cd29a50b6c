// Package outboxrepo persists outbox messages staged alongside state changes.
// Published rows are retained; they double as the order status-change history.
package outboxrepo

import (
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for outbox messages.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic       string
	Payload     []byte
	CreatedAt   time.Time  `gorm:"index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		Topic:       message.Topic(),
		Payload:     message.Payload(),
		CreatedAt:   message.CreatedAt(),
		PublishedAt: message.PublishedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return outbox.RestoreMessage(id, dto.Topic, dto.Payload, dto.CreatedAt, dto.PublishedAt)
}
