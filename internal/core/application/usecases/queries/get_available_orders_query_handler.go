package queries

import (
	"context"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable order pool from the
// database. The pool a fulfiller sees is advisory: the claim itself is
// decided by the conditional write, so a listed order may already be gone.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for pool queries.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns confirmed unassigned orders, oldest first so long-waiting
// orders surface at the top.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			service_type,
			weight_kg,
			total_price_cents,
			created_at
		FROM orders
		WHERE status = ?
		  AND washer_id IS NULL
		  AND partner_id IS NULL
		ORDER BY created_at
	`, order.StatusConfirmed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var serviceType string
		var weightKg float64
		var totalCents int64
		var resp GetAvailableOrdersQueryResponse

		if err = rows.Scan(&id, &serviceType, &weightKg, &totalCents, &resp.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		resp.ServiceType, err = order.ServiceTypeFromString(serviceType)
		if err != nil {
			return nil, err
		}

		resp.TotalPrice, err = kernel.NewMoney(totalCents)
		if err != nil {
			return nil, err
		}

		resp.WeightKg = weightKg
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
