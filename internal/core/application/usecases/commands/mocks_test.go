package commands_test

import (
	"context"
	"time"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/fulfiller"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/outbox"
	"pressing/internal/core/domain/model/promocode"
	"pressing/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPromoCodeRepository struct{ mock.Mock }

func (m *MockPromoCodeRepository) Add(ctx context.Context, p *promocode.PromoCode) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) Get(ctx context.Context, id kernel.UUID) (*promocode.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promocode.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promocode.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) HasUsageByUser(ctx context.Context, promoCodeID, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, promoCodeID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) RegisterUsage(ctx context.Context, usage *promocode.Usage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) IncrementUses(ctx context.Context, promoCodeID kernel.UUID) error {
	args := m.Called(ctx, promoCodeID)
	return args.Error(0)
}

type MockFulfillerRepository struct{ mock.Mock }

func (m *MockFulfillerRepository) AddWasher(ctx context.Context, w *fulfiller.Washer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockFulfillerRepository) UpdateWasher(ctx context.Context, w *fulfiller.Washer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockFulfillerRepository) GetWasher(ctx context.Context, id kernel.UUID) (*fulfiller.Washer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfiller.Washer), args.Error(1)
}

func (m *MockFulfillerRepository) AddPartner(ctx context.Context, p *fulfiller.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockFulfillerRepository) UpdatePartner(ctx context.Context, p *fulfiller.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockFulfillerRepository) GetPartner(ctx context.Context, id kernel.UUID) (*fulfiller.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfiller.Partner), args.Error(1)
}

type MockWebhookEventRepository struct{ mock.Mock }

func (m *MockWebhookEventRepository) Record(ctx context.Context, eventID, eventType string, receivedAt time.Time) error {
	args := m.Called(ctx, eventID, eventType, receivedAt)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PromoCodeRepository() ports.PromoCodeRepository {
	args := m.Called()
	return args.Get(0).(ports.PromoCodeRepository)
}

func (m *MockUoW) FulfillerRepository() ports.FulfillerRepository {
	args := m.Called()
	return args.Get(0).(ports.FulfillerRepository)
}

func (m *MockUoW) WebhookEventRepository() ports.WebhookEventRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookEventRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockClaimUoWFactory struct{ mock.Mock }

func (m *MockClaimUoWFactory) Create() commands.ClaimUoW {
	args := m.Called()
	return args.Get(0).(commands.ClaimUoW)
}

type MockPromoUoWFactory struct{ mock.Mock }

func (m *MockPromoUoWFactory) Create() commands.PromoUoW {
	args := m.Called()
	return args.Get(0).(commands.PromoUoW)
}

type MockReconcileUoWFactory struct{ mock.Mock }

func (m *MockReconcileUoWFactory) Create() commands.ReconcileUoW {
	args := m.Called()
	return args.Get(0).(commands.ReconcileUoW)
}

type MockCheckoutProvider struct{ mock.Mock }

func (m *MockCheckoutProvider) CreateCheckoutSession(ctx context.Context, orderID, clientID kernel.UUID,
	serviceType order.ServiceType, amount kernel.Money) (*ports.CheckoutSession, error) {
	args := m.Called(ctx, orderID, clientID, serviceType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CheckoutSession), args.Error(1)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
