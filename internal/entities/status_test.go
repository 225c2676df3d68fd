package entities_test

import (
	"testing"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_NextStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status entities.OrderStatus
		want   []entities.OrderStatus
	}{
		{
			name:   "pending has no courier transitions",
			status: entities.StatusPending,
			want:   nil,
		},
		{
			name:   "accepted can be taken",
			status: entities.StatusAccepted,
			want:   []entities.OrderStatus{entities.StatusAssignedToDelivery},
		},
		{
			name:   "assigned offers the three outcomes",
			status: entities.StatusAssignedToDelivery,
			want:   []entities.OrderStatus{entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed},
		},
		{
			name:   "delayed allows re-attempts",
			status: entities.StatusDelayed,
			want:   []entities.OrderStatus{entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed},
		},
		{
			name:   "delivered is terminal",
			status: entities.StatusDelivered,
			want:   nil,
		},
		{
			name:   "cancelled is terminal",
			status: entities.StatusCancelled,
			want:   nil,
		},
		{
			name:   "rejected is terminal",
			status: entities.StatusRejected,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.NextStatuses())
		})
	}
}

func TestOrderStatus_CanTransition(t *testing.T) {
	assert.True(t, entities.StatusAccepted.CanTransition(entities.StatusAssignedToDelivery))
	assert.True(t, entities.StatusAssignedToDelivery.CanTransition(entities.StatusDelivered))
	assert.True(t, entities.StatusAssignedToDelivery.CanTransition(entities.StatusCancelled))
	assert.True(t, entities.StatusAssignedToDelivery.CanTransition(entities.StatusDelayed))
	assert.True(t, entities.StatusDelayed.CanTransition(entities.StatusDelayed))

	// server-side edge, never courier-initiated
	assert.False(t, entities.StatusPending.CanTransition(entities.StatusAccepted))

	// terminals never move
	for _, terminal := range []entities.OrderStatus{
		entities.StatusDelivered, entities.StatusCancelled, entities.StatusRejected,
	} {
		for _, target := range []entities.OrderStatus{
			entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed, entities.StatusAssignedToDelivery,
		} {
			assert.False(t, terminal.CanTransition(target), "%s -> %s", terminal, target)
		}
	}

	// no skipping straight from accepted to an outcome
	assert.False(t, entities.StatusAccepted.CanTransition(entities.StatusDelivered))
	assert.False(t, entities.StatusAccepted.CanTransition(entities.StatusCancelled))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, entities.StatusDelivered.Terminal())
	assert.True(t, entities.StatusCancelled.Terminal())
	assert.True(t, entities.StatusRejected.Terminal())

	assert.False(t, entities.StatusPending.Terminal())
	assert.False(t, entities.StatusAccepted.Terminal())
	assert.False(t, entities.StatusAssignedToDelivery.Terminal())
	assert.False(t, entities.StatusDelayed.Terminal())
}

func TestOrderStatus_RequiresReason(t *testing.T) {
	assert.True(t, entities.StatusCancelled.RequiresReason())
	assert.True(t, entities.StatusDelayed.RequiresReason())
	assert.True(t, entities.StatusRejected.RequiresReason())

	assert.False(t, entities.StatusDelivered.RequiresReason())
	assert.False(t, entities.StatusAssignedToDelivery.RequiresReason())
}
