package order_test

import (
	"testing"

	"pressing/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPending,
			order.StatusConfirmed,
			order.StatusAssigned,
			order.StatusInProgress,
			order.StatusReady,
			order.StatusCompleted,
			order.StatusCancelled,
			order.StatusFailedPayment,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", order.StatusPending.String())
	assert.Equal(t, "in_progress", order.StatusInProgress.String())
	assert.Equal(t, "failed_payment", order.StatusFailedPayment.String())
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trips_wire_names", func(t *testing.T) {
		s, err := order.StatusFromString("ready")
		require.NoError(t, err)
		assert.Equal(t, order.StatusReady, s)
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")
		require.Error(t, err)

		_, err = order.StatusFromString("shipped")
		require.Error(t, err)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusFailedPayment.IsTerminal())
}

func TestRoleFromString(t *testing.T) {
	t.Run("parses_actor_roles", func(t *testing.T) {
		r, err := order.RoleFromString("washer")
		require.NoError(t, err)
		assert.Equal(t, order.RoleWasher, r)
	})

	t.Run("system_is_not_parseable_from_external_input", func(t *testing.T) {
		_, err := order.RoleFromString("system")
		require.Error(t, err)
	})
}

func TestRoleIsFulfiller(t *testing.T) {
	assert.True(t, order.RoleWasher.IsFulfiller())
	assert.True(t, order.RolePartner.IsFulfiller())
	assert.False(t, order.RoleClient.IsFulfiller())
	assert.False(t, order.RoleAdmin.IsFulfiller())
	assert.False(t, order.RoleSystem.IsFulfiller())
}

func TestServiceTypeFromString(t *testing.T) {
	st, err := order.ServiceTypeFromString("express")
	require.NoError(t, err)
	assert.Equal(t, order.ServiceExpress, st)

	_, err = order.ServiceTypeFromString("dry")
	require.Error(t, err)
}
