package commands_test

import (
	"testing"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/promocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func percentPromo(t *testing.T, code string, percent float64) *promocode.PromoCode {
	t.Helper()
	p, err := promocode.NewPromoCode(kernel.NewUUID(), code, promocode.DiscountPercent, percent, kernel.Money{}, nil, nil, false)
	require.NoError(t, err)
	return p
}

func TestNewApplyPromoCommand(t *testing.T) {
	t.Run("normalizes the code", func(t *testing.T) {
		cmd, err := commands.NewApplyPromoCommand(kernel.NewUUID(), kernel.NewUUID(), "  welcome10 ")
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", cmd.Code())
	})

	t.Run("rejects blank code", func(t *testing.T) {
		_, err := commands.NewApplyPromoCommand(kernel.NewUUID(), kernel.NewUUID(), "   ")
		require.ErrorIs(t, err, commands.ErrPromoCodeIsRequired)
	})
}

func TestApplyPromoCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID) // express 2 kg, 2000 cents, paid
	promo := percentPromo(t, "WELCOME10", 10)

	cmd, err := commands.NewApplyPromoCommand(aggregate.ID(), clientID, "welcome10")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	promoRepo := new(MockPromoCodeRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PromoCodeRepository").Return(promoRepo).Once(),
		promoRepo.On("GetByCode", mock.Anything, "WELCOME10").Return(promo, nil).Once(),
		promoRepo.On("HasUsageByUser", mock.Anything, promo.ID(), clientID).Return(false, nil).Once(),
		promoRepo.On("RegisterUsage", mock.Anything, mock.AnythingOfType("*promocode.Usage")).Return(nil).Once(),
		promoRepo.On("IncrementUses", mock.Anything, promo.ID()).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPromoCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, int64(1800), aggregate.TotalPrice().Cents())
	assert.Equal(t, int64(200), aggregate.DiscountAmount().Cents())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	promoRepo.AssertExpectations(t)
}

func TestApplyPromoCommandHandler_Handle_WrongClient(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	intruder := kernel.NewUUID()
	aggregate := confirmedOrder(t, owner)

	cmd, err := commands.NewApplyPromoCommand(aggregate.ID(), intruder, "WELCOME10")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPromoCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestApplyPromoCommandHandler_Handle_SingleUseCodeAlreadyRedeemed(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID)
	promo := percentPromo(t, "ONCE", 15)

	cmd, err := commands.NewApplyPromoCommand(aggregate.ID(), clientID, "ONCE")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	promoRepo := new(MockPromoCodeRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PromoCodeRepository").Return(promoRepo).Once(),
		promoRepo.On("GetByCode", mock.Anything, "ONCE").Return(promo, nil).Once(),
		promoRepo.On("HasUsageByUser", mock.Anything, promo.ID(), clientID).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPromoCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, promocode.ErrPromoAlreadyUsed)
	assert.Equal(t, int64(2000), aggregate.TotalPrice().Cents())
	uow.AssertExpectations(t)
}

func TestApplyPromoCommandHandler_Handle_UnpaidOrder(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := pendingOrder(t, clientID) // created, never paid
	promo := percentPromo(t, "WELCOME10", 10)

	cmd, err := commands.NewApplyPromoCommand(aggregate.ID(), clientID, "WELCOME10")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	promoRepo := new(MockPromoCodeRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PromoCodeRepository").Return(promoRepo).Once(),
		promoRepo.On("GetByCode", mock.Anything, "WELCOME10").Return(promo, nil).Once(),
		promoRepo.On("HasUsageByUser", mock.Anything, promo.ID(), clientID).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPromoCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrPromoBeforePayment)

	assert.Equal(t, int64(2000), aggregate.TotalPrice().Cents())
	promoRepo.AssertNotCalled(t, "RegisterUsage", mock.Anything, mock.Anything)
	promoRepo.AssertNotCalled(t, "IncrementUses", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	promoRepo.AssertExpectations(t)
}

func TestApplyPromoCommandHandler_Handle_ExhaustedUnderConcurrency(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := confirmedOrder(t, clientID)
	promo := percentPromo(t, "LAST1", 10)

	cmd, err := commands.NewApplyPromoCommand(aggregate.ID(), clientID, "LAST1")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	promoRepo := new(MockPromoCodeRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PromoCodeRepository").Return(promoRepo).Once(),
		promoRepo.On("GetByCode", mock.Anything, "LAST1").Return(promo, nil).Once(),
		promoRepo.On("HasUsageByUser", mock.Anything, promo.ID(), clientID).Return(false, nil).Once(),
		promoRepo.On("RegisterUsage", mock.Anything, mock.AnythingOfType("*promocode.Usage")).Return(nil).Once(),
		promoRepo.On("IncrementUses", mock.Anything, promo.ID()).Return(promocode.ErrPromoExhausted).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPromoCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, promocode.ErrPromoExhausted)
	uow.AssertExpectations(t)
}
