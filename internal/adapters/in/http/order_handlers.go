package http

import (
	"net/http"
	"time"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ServiceType       string  `json:"service_type"`
	EstimatedWeightKg float64 `json:"estimated_weight_kg"`
}

// CreateOrderResponse returns the identifier of the newly placed order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// ClientOrderView is one order in the client's history.
type ClientOrderView struct {
	ID              string    `json:"id"`
	ServiceType     string    `json:"service_type"`
	WeightKg        float64   `json:"weight_kg"`
	TotalPriceCents int64     `json:"total_price_cents"`
	DiscountCents   int64     `json:"discount_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// FulfillerOrderView is one order in a washer's or partner's workload.
type FulfillerOrderView struct {
	ID              string     `json:"id"`
	ServiceType     string     `json:"service_type"`
	WeightKg        float64    `json:"weight_kg"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          string     `json:"status"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// AvailableOrderView is one claimable order in the marketplace pool.
type AvailableOrderView struct {
	ID              string    `json:"id"`
	ServiceType     string    `json:"service_type"`
	WeightKg        float64   `json:"weight_kg"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
// Target is a lifecycle status name; "confirmed" from an assigned order
// releases the claim back to the pool.
type TransitionOrderRequest struct {
	Target string `json:"target"`
}

// WeighOrderRequest is the body of POST /api/v1/orders/:id/weigh.
type WeighOrderRequest struct {
	ActualWeightKg float64 `json:"actual_weight_kg"`
}

// CheckoutResponse carries the provider's hosted payment page.
type CheckoutResponse struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
}

// CreateOrder handles POST /api/v1/orders. Only clients place orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RoleClient {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "only clients can place orders",
		})
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	serviceType, err := order.ServiceTypeFromString(req.ServiceType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actorID, serviceType, req.EstimatedWeightKg)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders. Clients see their history;
// washers and partners see their workload.
func (s *Server) GetOrders(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	switch {
	case role == order.RoleClient:
		return s.listClientOrders(ctx, actorID)
	case role.IsFulfiller():
		return s.listFulfillerOrders(ctx, actorID, role)
	default:
		return badRequest(ctx, "role has no order listing")
	}
}

func (s *Server) listClientOrders(ctx echo.Context, clientID kernel.UUID) error {
	query, err := queries.NewGetClientOrdersQuery(clientID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getClientOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ClientOrderView, len(orders))
	for i, row := range orders {
		response[i] = ClientOrderView{
			ID:              row.ID.String(),
			ServiceType:     row.ServiceType.String(),
			WeightKg:        row.WeightKg,
			TotalPriceCents: row.TotalPrice.Cents(),
			DiscountCents:   row.DiscountAmount.Cents(),
			Status:          row.Status.String(),
			PaymentStatus:   row.PaymentStatus.String(),
			CreatedAt:       row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) listFulfillerOrders(ctx echo.Context, fulfillerID kernel.UUID, role order.Role) error {
	query, err := queries.NewGetFulfillerOrdersQuery(fulfillerID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getFulfillerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]FulfillerOrderView, len(orders))
	for i, row := range orders {
		response[i] = FulfillerOrderView{
			ID:              row.ID.String(),
			ServiceType:     row.ServiceType.String(),
			WeightKg:        row.WeightKg,
			TotalPriceCents: row.TotalPrice.Cents(),
			Status:          row.Status.String(),
			AssignedAt:      row.AssignedAt,
			CompletedAt:     row.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableOrders handles GET /api/v1/orders/available: the pool of
// confirmed, unclaimed orders any eligible fulfiller may take.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]AvailableOrderView, len(orders))
	for i, row := range orders {
		response[i] = AvailableOrderView{
			ID:              row.ID.String(),
			ServiceType:     row.ServiceType.String(),
			WeightKg:        row.WeightKg,
			TotalPriceCents: row.TotalPrice.Cents(),
			CreatedAt:       row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim. First eligible
// fulfiller wins; losers get 409.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, role, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// WeighOrder handles POST /api/v1/orders/:id/weigh. The assigned fulfiller
// records the measured weight, which reprices the order.
func (s *Server) WeighOrder(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req WeighOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewWeighOrderCommand(orderID, req.ActualWeightKg, role, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.weighOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateCheckout handles POST /api/v1/orders/:id/checkout: creates a
// provider payment session for a pending order the caller owns.
func (s *Server) CreateCheckout(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RoleClient {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "only the ordering client can pay",
		})
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateCheckoutSessionCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	session, err := s.createCheckoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CheckoutResponse{
		SessionID:  session.SessionID,
		PaymentURL: session.PaymentURL,
	})
}
