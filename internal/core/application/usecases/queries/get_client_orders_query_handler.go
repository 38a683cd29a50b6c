package queries

import (
	"context"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetClientOrdersQueryHandler reads one client's order history.
type GetClientOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetClientOrdersQueryHandler creates a handler for client history queries.
func NewGetClientOrdersQueryHandler(db *gorm.DB) GetClientOrdersQueryHandler {
	return GetClientOrdersQueryHandler{db: db}
}

// Handle returns all of the client's orders, newest first.
func (h GetClientOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClientOrdersQuery,
) ([]GetClientOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetClientOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			service_type,
			weight_kg,
			total_price_cents,
			discount_cents,
			status,
			payment_status,
			created_at
		FROM orders
		WHERE client_id = ?
		ORDER BY created_at DESC
	`, query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var serviceType, status, paymentStatus string
		var totalCents, discountCents int64
		var resp GetClientOrdersQueryResponse

		if err = rows.Scan(&id, &serviceType, &resp.WeightKg, &totalCents, &discountCents,
			&status, &paymentStatus, &resp.CreatedAt); err != nil {
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
		resp.PaymentStatus, err = order.PaymentStatusFromString(paymentStatus)
		if err != nil {
			return nil, err
		}
		resp.TotalPrice, err = kernel.NewMoney(totalCents)
		if err != nil {
			return nil, err
		}
		resp.DiscountAmount, err = kernel.NewMoney(discountCents)
		if err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
