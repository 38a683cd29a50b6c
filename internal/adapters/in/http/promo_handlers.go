package http

import (
	"net/http"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ValidatePromoRequest is the body of POST /api/v1/promocodes/validate.
// TotalCents is the order total the discount is previewed against.
type ValidatePromoRequest struct {
	Code       string `json:"code"`
	TotalCents int64  `json:"total_cents"`
}

// ValidatePromoResponse is the dry-run answer. The preview is advisory:
// redemption re-checks everything transactionally.
type ValidatePromoResponse struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	DiscountCents int64  `json:"discount_cents"`
	NewTotalCents int64  `json:"new_total_cents"`
}

// ApplyPromoRequest is the body of POST /api/v1/promocodes/apply.
type ApplyPromoRequest struct {
	OrderID string `json:"order_id"`
	Code    string `json:"code"`
}

// ValidatePromo handles POST /api/v1/promocodes/validate.
func (s *Server) ValidatePromo(ctx echo.Context) error {
	actorID, _, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ValidatePromoRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	total, err := kernel.NewMoney(req.TotalCents)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewValidatePromoQuery(req.Code, actorID, total)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.validatePromoHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ValidatePromoResponse{
		Valid:         result.Valid,
		Reason:        result.Reason,
		DiscountCents: result.DiscountAmount.Cents(),
		NewTotalCents: result.NewTotal.Cents(),
	})
}

// ApplyPromo handles POST /api/v1/promocodes/apply: redeems a code against
// the caller's order.
func (s *Server) ApplyPromo(ctx echo.Context) error {
	actorID, role, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RoleClient {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "only clients can redeem promo codes",
		})
	}

	var req ApplyPromoRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	cmd, err := commands.NewApplyPromoCommand(orderID, actorID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.applyPromoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}
