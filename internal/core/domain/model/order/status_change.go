package order

import (
	"time"

	"pressing/internal/core/domain/model/kernel"
)

// StatusChange is one audit-trail entry of the order's status history.
// Changes are recorded in memory on every transition and drained into the
// outbox by the command handler in the same transaction as the order
// update. Published rows are retained, giving dispute resolution a
// complete, ordered trail.
type StatusChange struct {
	OrderID    kernel.UUID
	FromStatus Status
	ToStatus   Status
	Role       Role
	ActorID    kernel.UUID
	ChangedAt  time.Time
}
