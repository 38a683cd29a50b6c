package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "pressing/internal/adapters/in/http"
	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/model/outbox"
	"pressing/internal/core/ports"
	"pressing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

type fakeOrderRepository struct {
	orders map[string]*order.Order
}

func (f *fakeOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	f.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (f *fakeOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	f.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (f *fakeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	aggregate, ok := f.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return aggregate, nil
}

func (f *fakeOrderRepository) Claim(_ context.Context, _ *order.Order) error {
	return nil
}

func (f *fakeOrderRepository) GetAllPendingBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

type fakeWebhookLedger struct {
	processed map[string]bool
}

func (f *fakeWebhookLedger) Record(_ context.Context, eventID, _ string, _ time.Time) error {
	if f.processed[eventID] {
		return ports.ErrWebhookEventAlreadyProcessed
	}
	f.processed[eventID] = true
	return nil
}

type fakeOutboxRepository struct {
	staged []*outbox.Message
}

func (f *fakeOutboxRepository) Add(_ context.Context, message *outbox.Message) error {
	f.staged = append(f.staged, message)
	return nil
}

func (f *fakeOutboxRepository) GetUnpublished(_ context.Context, _ int) ([]*outbox.Message, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) Update(_ context.Context, _ *outbox.Message) error {
	return nil
}

// fakeReconcileStore is an in-memory reconcile unit of work: one order
// table, the idempotency ledger, and the outbox.
type fakeReconcileStore struct {
	orderRepo  *fakeOrderRepository
	ledger     *fakeWebhookLedger
	outboxRepo *fakeOutboxRepository
}

func newFakeReconcileStore() *fakeReconcileStore {
	return &fakeReconcileStore{
		orderRepo:  &fakeOrderRepository{orders: make(map[string]*order.Order)},
		ledger:     &fakeWebhookLedger{processed: make(map[string]bool)},
		outboxRepo: &fakeOutboxRepository{},
	}
}

func (f *fakeReconcileStore) Begin(_ context.Context) error    { return nil }
func (f *fakeReconcileStore) Commit(_ context.Context) error   { return nil }
func (f *fakeReconcileStore) Rollback(_ context.Context) error { return nil }

func (f *fakeReconcileStore) OrderRepository() ports.OrderRepository { return f.orderRepo }

func (f *fakeReconcileStore) WebhookEventRepository() ports.WebhookEventRepository {
	return f.ledger
}

func (f *fakeReconcileStore) OutboxRepository() ports.OutboxRepository { return f.outboxRepo }

type fakeReconcileUoWFactory struct {
	store *fakeReconcileStore
}

func (f fakeReconcileUoWFactory) Create() commands.ReconcileUoW {
	return f.store
}

func newWebhookServer(t *testing.T, store *fakeReconcileStore) *apihttp.Server {
	t.Helper()
	return newWebhookServerWithLogger(t, store, slog.New(slog.DiscardHandler))
}

func newWebhookServerWithLogger(t *testing.T, store *fakeReconcileStore, logger *slog.Logger) *apihttp.Server {
	t.Helper()

	server, err := apihttp.NewServer(
		commands.CreateOrderCommandHandler{},
		commands.ClaimOrderCommandHandler{},
		commands.TransitionOrderCommandHandler{},
		commands.WeighOrderCommandHandler{},
		commands.ApplyPromoCommandHandler{},
		commands.CreateCheckoutSessionCommandHandler{},
		commands.NewReconcilePaymentCommandHandler(fakeReconcileUoWFactory{store: store}),
		queries.GetAvailableOrdersQueryHandler{},
		queries.GetClientOrdersQueryHandler{},
		queries.GetFulfillerOrdersQueryHandler{},
		queries.ValidatePromoQueryHandler{},
		testWebhookSecret,
		logger,
	)
	require.NoError(t, err)

	return server
}

// signPayload computes a Stripe v1 signature header over the raw body.
func signPayload(secret string, payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookPayload(eventID, eventType string, orderID kernel.UUID) string {
	return fmt.Sprintf(`{
		"id": %q,
		"type": %q,
		"api_version": "2024-06-20",
		"data": {
			"object": {
				"id": "cs_test_1",
				"metadata": {"order_id": %q, "client_id": "ignored"}
			}
		}
	}`, eventID, eventType, orderID.String())
}

func postWebhook(server *apihttp.Server, payload, signature string) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(apihttp.HeaderStripeSignature, signature)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(2400)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.ServiceExpress, 2.0, total, time.Now().UTC())
	require.NoError(t, err)

	return aggregate
}

func TestStripeWebhook_ConfirmsOrderOnCompletedCheckout(t *testing.T) {
	store := newFakeReconcileStore()
	aggregate := pendingOrder(t)
	store.orderRepo.orders[aggregate.ID().String()] = aggregate

	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, aggregate.ID())

	rec := postWebhook(server, payload, signPayload(testWebhookSecret, []byte(payload), time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	assert.Equal(t, order.PaymentPaid, aggregate.PaymentStatus())
	assert.Len(t, store.outboxRepo.staged, 1)
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	store := newFakeReconcileStore()
	aggregate := pendingOrder(t)
	store.orderRepo.orders[aggregate.ID().String()] = aggregate

	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, aggregate.ID())

	rec := postWebhook(server, payload, signPayload("whsec_wrong", []byte(payload), time.Now()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	assert.Empty(t, store.ledger.processed)
}

func TestStripeWebhook_RejectsMissingSignature(t *testing.T) {
	store := newFakeReconcileStore()
	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, kernel.NewUUID())

	rec := postWebhook(server, payload, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStripeWebhook_ReplayIsAcknowledgedOnce(t *testing.T) {
	store := newFakeReconcileStore()
	aggregate := pendingOrder(t)
	store.orderRepo.orders[aggregate.ID().String()] = aggregate

	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, aggregate.ID())
	signature := signPayload(testWebhookSecret, []byte(payload), time.Now())

	first := postWebhook(server, payload, signature)
	second := postWebhook(server, payload, signature)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	assert.Len(t, store.outboxRepo.staged, 1)
}

func TestStripeWebhook_LogsRejectedSignatureAsWarning(t *testing.T) {
	store := newFakeReconcileStore()
	var logs bytes.Buffer
	server := newWebhookServerWithLogger(t, store, slog.New(slog.NewTextHandler(&logs, nil)))
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, kernel.NewUUID())

	rec := postWebhook(server, payload, signPayload("whsec_wrong", []byte(payload), time.Now()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "signature verification failed")
}

func TestStripeWebhook_LogsDuplicateDelivery(t *testing.T) {
	store := newFakeReconcileStore()
	aggregate := pendingOrder(t)
	store.orderRepo.orders[aggregate.ID().String()] = aggregate

	var logs bytes.Buffer
	server := newWebhookServerWithLogger(t, store, slog.New(slog.NewTextHandler(&logs, nil)))
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, aggregate.ID())
	signature := signPayload(testWebhookSecret, []byte(payload), time.Now())

	postWebhook(server, payload, signature)
	logs.Reset()
	rec := postWebhook(server, payload, signature)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "duplicate webhook delivery")
	assert.Contains(t, logs.String(), "evt_1")
}

func TestStripeWebhook_AcknowledgesUnsupportedEventType(t *testing.T) {
	store := newFakeReconcileStore()
	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", "invoice.paid", kernel.NewUUID())

	rec := postWebhook(server, payload, signPayload(testWebhookSecret, []byte(payload), time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.ledger.processed)
}

func TestStripeWebhook_AcknowledgesUnknownOrder(t *testing.T) {
	store := newFakeReconcileStore()
	server := newWebhookServer(t, store)
	payload := webhookPayload("evt_1", commands.EventCheckoutCompleted, kernel.NewUUID())

	rec := postWebhook(server, payload, signPayload(testWebhookSecret, []byte(payload), time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
}
