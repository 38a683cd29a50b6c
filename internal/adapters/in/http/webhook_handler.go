package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"pressing/internal/adapters/out/stripepay"
	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v78/webhook"
)

// HeaderStripeSignature carries the provider's HMAC over the raw body.
const HeaderStripeSignature = "Stripe-Signature"

// maxWebhookBodyBytes caps the webhook payload read. Stripe events are
// small; anything larger is not a legitimate delivery.
const maxWebhookBodyBytes = 1 << 16

// webhookObject is the slice of the event payload the reconciler needs:
// the correlation metadata stamped at checkout creation.
type webhookObject struct {
	Metadata map[string]string `json:"metadata"`
}

// StripeWebhook handles POST /api/v1/webhooks/stripe.
//
// Signature verification happens on the raw body before any parsing.
// Every delivery that cannot possibly succeed on retry is acknowledged
// with 200 so the provider stops resending it; only transient failures
// return 5xx.
func (s *Server) StripeWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return badRequest(ctx, "cannot read request body")
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		ctx.Request().Header.Get(HeaderStripeSignature),
		s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		s.logger.Warn("webhook signature verification failed, possible spoofed delivery",
			"remote_addr", ctx.RealIP(), "error", err)
		return badRequest(ctx, "invalid webhook signature")
	}

	eventType := string(event.Type)
	if !commands.IsSupportedPaymentEvent(eventType) {
		s.logger.Info("ignoring unsupported webhook event type",
			"event_id", event.ID, "event_type", eventType)
		return ctx.NoContent(http.StatusOK)
	}

	var object webhookObject
	if err = json.Unmarshal(event.Data.Raw, &object); err != nil {
		s.logger.Info("acknowledging webhook event with unreadable payload",
			"event_id", event.ID, "event_type", eventType, "error", err)
		return ctx.NoContent(http.StatusOK)
	}

	orderID, err := kernel.UUIDFromString(object.Metadata[stripepay.MetadataOrderID])
	if err != nil {
		// Not one of our sessions. Retrying will not change that.
		s.logger.Info("acknowledging webhook event without order correlation",
			"event_id", event.ID, "event_type", eventType)
		return ctx.NoContent(http.StatusOK)
	}

	cmd, err := commands.NewReconcilePaymentCommand(event.ID, eventType, orderID, time.Now().UTC())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.reconcilePaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, ports.ErrWebhookEventAlreadyProcessed) {
			s.logger.Info("acknowledging duplicate webhook delivery",
				"event_id", event.ID, "event_type", eventType, "order_id", orderID.String())
			return ctx.NoContent(http.StatusOK)
		}
		if errors.Is(err, commands.ErrUnknownCorrelation) {
			s.logger.Info("acknowledging webhook event for unknown order",
				"event_id", event.ID, "event_type", eventType, "order_id", orderID.String())
			return ctx.NoContent(http.StatusOK)
		}
		s.logger.Error("webhook reconciliation failed, provider will retry",
			"event_id", event.ID, "event_type", eventType, "order_id", orderID.String(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "reconciliation failed",
		})
	}

	return ctx.NoContent(http.StatusOK)
}
