package commands_test

import (
	"testing"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/fulfiller"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approvedWasher(t *testing.T, id kernel.UUID) *fulfiller.Washer {
	t.Helper()
	w, err := fulfiller.NewWasher(id, "Marta", "acct_w1")
	require.NoError(t, err)
	w.Approve()
	w.SetAvailable(true)
	return w
}

func TestNewClaimOrderCommand(t *testing.T) {
	t.Run("rejects non fulfiller roles", func(t *testing.T) {
		for _, role := range []order.Role{order.RoleClient, order.RoleAdmin, order.RoleSystem} {
			_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID(), role)
			require.ErrorIs(t, err, commands.ErrRoleCannotClaim, role.String())
		}
	})

	t.Run("accepts washers and partners", func(t *testing.T) {
		for _, role := range []order.Role{order.RoleWasher, order.RolePartner} {
			_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID(), role)
			require.NoError(t, err)
		}
	})
}

func TestClaimOrderCommandHandler_Handle_WasherSuccess(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	washerID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID)

	cmd, err := commands.NewClaimOrderCommand(aggregate.ID(), washerID, order.RoleWasher)
	require.NoError(t, err)

	fulfillerRepo := new(MockFulfillerRepository)
	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FulfillerRepository").Return(fulfillerRepo).Once(),
		fulfillerRepo.On("GetWasher", mock.Anything, washerID).Return(approvedWasher(t, washerID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Claim", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusAssigned, aggregate.Status())
	fulfillerID, role := aggregate.Fulfiller()
	require.NotNil(t, fulfillerID)
	assert.True(t, fulfillerID.IsEqual(washerID))
	assert.Equal(t, order.RoleWasher, role)

	fulfillerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_UnapprovedWasher(t *testing.T) {
	ctx := t.Context()
	washerID := kernel.NewUUID()
	unapproved, err := fulfiller.NewWasher(washerID, "Igor", "acct_w2")
	require.NoError(t, err)

	cmd, err := commands.NewClaimOrderCommand(kernel.NewUUID(), washerID, order.RoleWasher)
	require.NoError(t, err)

	fulfillerRepo := new(MockFulfillerRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FulfillerRepository").Return(fulfillerRepo).Once(),
		fulfillerRepo.On("GetWasher", mock.Anything, washerID).Return(unapproved, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrFulfillerNotEligible)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	washerID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID)

	cmd, err := commands.NewClaimOrderCommand(aggregate.ID(), washerID, order.RoleWasher)
	require.NoError(t, err)

	fulfillerRepo := new(MockFulfillerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FulfillerRepository").Return(fulfillerRepo).Once(),
		fulfillerRepo.On("GetWasher", mock.Anything, washerID).Return(approvedWasher(t, washerID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Claim", mock.Anything, aggregate).Return(order.ErrAlreadyClaimed).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_AlreadyAssignedInMemory(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	otherWasher := kernel.NewUUID()
	aggregate := assignedOrder(t, clientID, order.RoleWasher, otherWasher)

	partnerID := kernel.NewUUID()
	partner, err := fulfiller.NewPartner(partnerID, "Pressing du Marais", 0.25, "acct_p1")
	require.NoError(t, err)
	partner.Approve()

	cmd, err := commands.NewClaimOrderCommand(aggregate.ID(), partnerID, order.RolePartner)
	require.NoError(t, err)

	fulfillerRepo := new(MockFulfillerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FulfillerRepository").Return(fulfillerRepo).Once(),
		fulfillerRepo.On("GetPartner", mock.Anything, partnerID).Return(partner, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClaimUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	uow.AssertExpectations(t)
}
