package commands_test

import (
	"testing"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := pendingOrder(t, clientID)

	cmd, err := commands.NewCreateCheckoutSessionCommand(aggregate.ID(), clientID)
	require.NoError(t, err)

	session := &ports.CheckoutSession{SessionID: "cs_test_1", PaymentURL: "https://checkout.example/cs_test_1"}

	orderRepo := new(MockOrderRepository)
	provider := new(MockCheckoutProvider)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		provider.On("CreateCheckoutSession", mock.Anything, aggregate.ID(), clientID,
			order.ServiceExpress, aggregate.TotalPrice()).Return(session, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCheckoutSessionCommandHandler(factory, provider)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, session, got)
	provider.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateCheckoutSessionCommandHandler_Handle_NotPayable(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID) // already paid

	cmd, err := commands.NewCreateCheckoutSessionCommand(aggregate.ID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	provider := new(MockCheckoutProvider)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCheckoutSessionCommandHandler(factory, provider)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotPayable)
	provider.AssertNotCalled(t, "CreateCheckoutSession")
	uow.AssertExpectations(t)
}

func TestCreateCheckoutSessionCommandHandler_Handle_WrongClient(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	intruder := kernel.NewUUID()
	aggregate := pendingOrder(t, owner)

	cmd, err := commands.NewCreateCheckoutSessionCommand(aggregate.ID(), intruder)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	provider := new(MockCheckoutProvider)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCheckoutSessionCommandHandler(factory, provider)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrUnauthorized)
	uow.AssertExpectations(t)
}

func TestCreateCheckoutSessionCommandHandler_Handle_RetryAfterFailedPayment(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := pendingOrder(t, clientID)
	changed, err := aggregate.ApplyPaymentFailed(aggregate.CreatedAt())
	require.NoError(t, err)
	require.True(t, changed)
	aggregate.PopStatusChanges()

	cmd, err := commands.NewCreateCheckoutSessionCommand(aggregate.ID(), clientID)
	require.NoError(t, err)

	session := &ports.CheckoutSession{SessionID: "cs_retry", PaymentURL: "https://checkout.example/cs_retry"}

	orderRepo := new(MockOrderRepository)
	provider := new(MockCheckoutProvider)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		provider.On("CreateCheckoutSession", mock.Anything, aggregate.ID(), clientID,
			order.ServiceExpress, aggregate.TotalPrice()).Return(session, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCheckoutSessionCommandHandler(factory, provider)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "cs_retry", got.SessionID)
	uow.AssertExpectations(t)
}
