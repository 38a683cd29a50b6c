package commands_test

import (
	"testing"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func testPricing(t *testing.T) *services.PricingCalculator {
	t.Helper()
	calc, err := services.NewPricingCalculator(services.DefaultPricingConfig())
	require.NoError(t, err)
	return calc
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, order.ServiceExpress, 2.0, money(t, 2000), time.Now().UTC())
	require.NoError(t, err)
	return o
}

func confirmedOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o := pendingOrder(t, clientID)
	changed, err := o.ApplyPaymentCompleted(time.Now().UTC())
	require.NoError(t, err)
	require.True(t, changed)
	o.PopStatusChanges()
	return o
}

func assignedOrder(t *testing.T, clientID kernel.UUID, role order.Role, fulfillerID kernel.UUID) *order.Order {
	t.Helper()
	o := confirmedOrder(t, clientID)
	require.NoError(t, o.Claim(role, fulfillerID, time.Now().UTC()))
	o.PopStatusChanges()
	return o
}
