// Package http exposes the REST surface of the pressing marketplace.
// Handlers translate between JSON and application commands and queries;
// all business decisions stay behind the use case layer.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/promocode"
	"pressing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers. Authentication is out of scope; the gateway in
// front of this service is trusted to have resolved them.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	claimOrderHandler       commands.ClaimOrderCommandHandler
	transitionOrderHandler  commands.TransitionOrderCommandHandler
	weighOrderHandler       commands.WeighOrderCommandHandler
	applyPromoHandler       commands.ApplyPromoCommandHandler
	createCheckoutHandler   commands.CreateCheckoutSessionCommandHandler
	reconcilePaymentHandler commands.ReconcilePaymentCommandHandler

	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getClientOrdersHandler    queries.GetClientOrdersQueryHandler
	getFulfillerOrdersHandler queries.GetFulfillerOrdersQueryHandler
	validatePromoHandler      queries.ValidatePromoQueryHandler

	webhookSecret string
	logger        *slog.Logger
}

// NewServer creates an HTTP server over the given use case handlers.
// webhookSecret is the payment provider's endpoint signing secret.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	weighOrderHandler commands.WeighOrderCommandHandler,
	applyPromoHandler commands.ApplyPromoCommandHandler,
	createCheckoutHandler commands.CreateCheckoutSessionCommandHandler,
	reconcilePaymentHandler commands.ReconcilePaymentCommandHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getClientOrdersHandler queries.GetClientOrdersQueryHandler,
	getFulfillerOrdersHandler queries.GetFulfillerOrdersQueryHandler,
	validatePromoHandler queries.ValidatePromoQueryHandler,
	webhookSecret string,
	logger *slog.Logger,
) (*Server, error) {
	if webhookSecret == "" {
		return nil, errs.NewValueIsRequiredError("webhookSecret")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		createOrderHandler:        createOrderHandler,
		claimOrderHandler:         claimOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		weighOrderHandler:         weighOrderHandler,
		applyPromoHandler:         applyPromoHandler,
		createCheckoutHandler:     createCheckoutHandler,
		reconcilePaymentHandler:   reconcilePaymentHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getClientOrdersHandler:    getClientOrdersHandler,
		getFulfillerOrdersHandler: getFulfillerOrdersHandler,
		validatePromoHandler:      validatePromoHandler,
		webhookSecret:             webhookSecret,
		logger:                    logger.With("component", "http"),
	}, nil
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/weigh", s.WeighOrder)
	api.POST("/orders/:id/checkout", s.CreateCheckout)

	api.POST("/promocodes/validate", s.ValidatePromo)
	api.POST("/promocodes/apply", s.ApplyPromo)

	api.POST("/webhooks/stripe", s.StripeWebhook)
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps a use case error to an HTTP status and writes the error body.
func fail(ctx echo.Context, err error) error {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

func statusFromError(err error) int {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, promocode.ErrPromoNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrStaleWrite),
		errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrPromoAlreadyApplied),
		errors.Is(err, order.ErrPromoBeforePayment),
		errors.Is(err, commands.ErrOrderNotPayable),
		errors.Is(err, commands.ErrFulfillerNotEligible),
		errors.Is(err, promocode.ErrPromoInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// actorFromRequest resolves the acting identity from the trusted headers.
func actorFromRequest(ctx echo.Context) (kernel.UUID, order.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, fmt.Errorf("invalid %s header: %w", HeaderActorID, err)
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, fmt.Errorf("invalid %s header: %w", HeaderActorRole, err)
	}

	return actorID, role, nil
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid order id: %w", err)
	}
	return orderID, nil
}
