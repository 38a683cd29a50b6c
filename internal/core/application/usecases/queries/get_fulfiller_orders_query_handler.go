package queries

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFulfillerOrdersQueryHandler reads the workload of one washer or partner.
type GetFulfillerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetFulfillerOrdersQueryHandler creates a handler for workload queries.
func NewGetFulfillerOrdersQueryHandler(db *gorm.DB) GetFulfillerOrdersQueryHandler {
	return GetFulfillerOrdersQueryHandler{db: db}
}

// Handle returns orders assigned to the fulfiller, most recently assigned
// first.
func (h GetFulfillerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetFulfillerOrdersQuery,
) ([]GetFulfillerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column := "washer_id"
	if query.Role() == order.RolePartner {
		column = "partner_id"
	}

	orders := make([]GetFulfillerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			service_type,
			weight_kg,
			total_price_cents,
			status,
			assigned_at,
			completed_at
		FROM orders
		WHERE `+column+` = ?
		ORDER BY assigned_at DESC
	`, query.FulfillerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var serviceType, status string
		var totalCents int64
		var assignedAt, completedAt *time.Time
		var resp GetFulfillerOrdersQueryResponse

		if err = rows.Scan(&id, &serviceType, &resp.WeightKg, &totalCents, &status,
			&assignedAt, &completedAt); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.ServiceType, err = order.ServiceTypeFromString(serviceType)
		if err != nil {
			return nil, err
		}
		resp.Status, err = order.StatusFromString(status)
		if err != nil {
			return nil, err
		}
		resp.TotalPrice, err = kernel.NewMoney(totalCents)
		if err != nil {
			return nil, err
		}
		resp.AssignedAt = assignedAt
		resp.CompletedAt = completedAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
