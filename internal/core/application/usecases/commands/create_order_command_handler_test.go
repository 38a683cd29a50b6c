package commands_test

import (
	"errors"
	"testing"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.ServiceExpress, 2.0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created := args.Get(1).(*order.Order)
				assert.Equal(t, order.StatusPending, created.Status())
				assert.Equal(t, int64(2000), created.TotalPrice().Cents())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, testPricing(t))
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, testPricing(t))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.ServiceStandard, 1.0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, testPricing(t))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.ServiceStandard, 1.0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, testPricing(t))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
