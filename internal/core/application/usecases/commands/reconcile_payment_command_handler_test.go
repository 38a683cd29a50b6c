package commands_test

import (
	"testing"
	"time"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"
	"pressing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewReconcilePaymentCommand(t *testing.T) {
	t.Run("rejects unsupported event types", func(t *testing.T) {
		_, err := commands.NewReconcilePaymentCommand("evt_1", "invoice.paid", kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, commands.ErrUnsupportedEventType)
	})

	t.Run("rejects empty event id", func(t *testing.T) {
		_, err := commands.NewReconcilePaymentCommand("", commands.EventCheckoutCompleted, kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, commands.ErrEventIDIsRequired)
	})
}

func TestIsSupportedPaymentEvent(t *testing.T) {
	assert.True(t, commands.IsSupportedPaymentEvent(commands.EventCheckoutCompleted))
	assert.True(t, commands.IsSupportedPaymentEvent(commands.EventCheckoutExpired))
	assert.True(t, commands.IsSupportedPaymentEvent(commands.EventPaymentFailed))
	assert.False(t, commands.IsSupportedPaymentEvent("payment_intent.created"))
}

func TestReconcilePaymentCommandHandler_Handle_CompletedConfirmsOrder(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := pendingOrder(t, clientID)
	receivedAt := time.Now().UTC()

	cmd, err := commands.NewReconcilePaymentCommand("evt_1", commands.EventCheckoutCompleted, aggregate.ID(), receivedAt)
	require.NoError(t, err)

	webhookRepo := new(MockWebhookEventRepository)
	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WebhookEventRepository").Return(webhookRepo).Once(),
		webhookRepo.On("Record", mock.Anything, "evt_1", commands.EventCheckoutCompleted, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	assert.Equal(t, order.PaymentPaid, aggregate.PaymentStatus())
	uow.AssertExpectations(t)
	webhookRepo.AssertExpectations(t)
}

func TestReconcilePaymentCommandHandler_Handle_DuplicateDelivery(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewReconcilePaymentCommand("evt_dup", commands.EventCheckoutCompleted, orderID, time.Now().UTC())
	require.NoError(t, err)

	webhookRepo := new(MockWebhookEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WebhookEventRepository").Return(webhookRepo).Once(),
		webhookRepo.On("Record", mock.Anything, "evt_dup", commands.EventCheckoutCompleted, mock.AnythingOfType("time.Time")).
			Return(ports.ErrWebhookEventAlreadyProcessed).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrWebhookEventAlreadyProcessed)
	uow.AssertExpectations(t)
}

func TestReconcilePaymentCommandHandler_Handle_UnknownCorrelation(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewReconcilePaymentCommand("evt_orphan", commands.EventCheckoutExpired, orderID, time.Now().UTC())
	require.NoError(t, err)

	webhookRepo := new(MockWebhookEventRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WebhookEventRepository").Return(webhookRepo).Once(),
		webhookRepo.On("Record", mock.Anything, "evt_orphan", commands.EventCheckoutExpired, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrUnknownCorrelation)
	uow.AssertExpectations(t)
}

func TestReconcilePaymentCommandHandler_Handle_StaleEventIsNoOp(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	washerID := kernel.NewUUID()
	// paid order already being worked on; a late expiry must not regress it
	aggregate := assignedOrder(t, clientID, order.RoleWasher, washerID)

	cmd, err := commands.NewReconcilePaymentCommand("evt_late", commands.EventCheckoutExpired, aggregate.ID(), time.Now().UTC())
	require.NoError(t, err)

	webhookRepo := new(MockWebhookEventRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WebhookEventRepository").Return(webhookRepo).Once(),
		webhookRepo.On("Record", mock.Anything, "evt_late", commands.EventCheckoutExpired, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusAssigned, aggregate.Status())
	assert.Equal(t, order.PaymentPaid, aggregate.PaymentStatus())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestReconcilePaymentCommandHandler_Handle_FailedMovesToRetryable(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := pendingOrder(t, clientID)

	cmd, err := commands.NewReconcilePaymentCommand("evt_fail", commands.EventPaymentFailed, aggregate.ID(), time.Now().UTC())
	require.NoError(t, err)

	webhookRepo := new(MockWebhookEventRepository)
	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WebhookEventRepository").Return(webhookRepo).Once(),
		webhookRepo.On("Record", mock.Anything, "evt_fail", commands.EventPaymentFailed, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusFailedPayment, aggregate.Status())
	assert.Equal(t, order.PaymentFailed, aggregate.PaymentStatus())
	uow.AssertExpectations(t)
}
