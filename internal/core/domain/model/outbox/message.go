package outbox

import (
	"errors"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message created without the
// constructor is used.
var ErrMessageIsNotConstructed = errors.New("message is not constructed")

// Message is a transactional outbox entry: a notification recorded in the
// same transaction as the state change that produced it, and published
// asynchronously by the dispatcher job. Delivery is at-least-once.
type Message struct {
	id          kernel.UUID
	topic       string
	payload     []byte
	createdAt   time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewMessage creates an unpublished outbox message.
func NewMessage(id kernel.UUID, topic string, payload []byte, createdAt time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Message{
		id:            id,
		topic:         topic,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from storage without validation
// beyond identity.
func RestoreMessage(id kernel.UUID, topic string, payload []byte, createdAt time.Time, publishedAt *time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return &Message{
		id:            id,
		topic:         topic,
		payload:       payload,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) Topic() string {
	return m.topic
}

func (m *Message) Payload() []byte {
	return m.payload
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) PublishedAt() *time.Time {
	return m.publishedAt
}

// IsPublished reports whether the message has already been delivered.
func (m *Message) IsPublished() bool {
	return m.publishedAt != nil
}

// MarkPublished records the delivery time. Marking an already published
// message again is a no-op.
func (m *Message) MarkPublished(now time.Time) {
	if m.publishedAt != nil {
		return
	}
	publishedAt := now
	m.publishedAt = &publishedAt
}

// Validate checks that the message was built through a constructor.
func (m *Message) Validate() error {
	if !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}
