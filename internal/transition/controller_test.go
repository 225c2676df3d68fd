package transition_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
	"github.com/ichaoui56/sonic-courier/internal/transition"
)

type orderServiceMock struct {
	mock.Mock
}

func (m *orderServiceMock) Order(ctx context.Context, id int64) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *orderServiceMock) Accept(ctx context.Context, id int64) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *orderServiceMock) UpdateStatus(ctx context.Context, id int64, update gateway.StatusUpdate) (entities.Order, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *orderServiceMock) Refetch(ctx context.Context, id int64) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func newController(svc transition.OrderService) *transition.Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return transition.NewController(logger, svc)
}

func statusPtr(s entities.OrderStatus) *entities.OrderStatus { return &s }

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name     string
		selected *entities.OrderStatus
		reason   string
		want     bool
	}{
		{name: "nothing selected", selected: nil, reason: "whatever", want: false},
		{name: "delivered needs no reason", selected: statusPtr(entities.StatusDelivered), want: true},
		{name: "delivered with reason", selected: statusPtr(entities.StatusDelivered), reason: "left at door", want: true},
		{name: "cancelled without reason", selected: statusPtr(entities.StatusCancelled), want: false},
		{name: "cancelled with blank reason", selected: statusPtr(entities.StatusCancelled), reason: "   ", want: false},
		{name: "cancelled with reason", selected: statusPtr(entities.StatusCancelled), reason: "refused", want: true},
		{name: "delayed without reason", selected: statusPtr(entities.StatusDelayed), want: false},
		{name: "delayed with reason", selected: statusPtr(entities.StatusDelayed), reason: "no answer", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transition.CanSubmit(tt.selected, tt.reason))
		})
	}
}

func TestController_Options(t *testing.T) {
	ctrl := newController(new(orderServiceMock))

	tests := []struct {
		status entities.OrderStatus
		want   []entities.OrderStatus
	}{
		{entities.StatusAccepted, []entities.OrderStatus{entities.StatusAssignedToDelivery}},
		{entities.StatusAssignedToDelivery, []entities.OrderStatus{entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed}},
		{entities.StatusDelayed, []entities.OrderStatus{entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed}},
		{entities.StatusDelivered, nil},
		{entities.StatusCancelled, nil},
		{entities.StatusRejected, nil},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got := ctrl.Options(entities.Order{Status: tt.status})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()
	const orderID = int64(42)

	t.Run("delivers and re-fetches", func(t *testing.T) {
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}, nil).Once()
		svc.On("UpdateStatus", ctx, orderID, gateway.StatusUpdate{Status: entities.StatusDelivered}).
			Return(entities.Order{ID: orderID, Status: entities.StatusDelivered}, nil).Once()
		refetched := entities.Order{ID: orderID, Status: entities.StatusDelivered, CustomerName: "Amine"}
		svc.On("Refetch", ctx, orderID).Return(refetched, nil).Once()

		got, err := newController(svc).Submit(ctx, orderID, statusPtr(entities.StatusDelivered), "")
		require.NoError(t, err)
		assert.Equal(t, refetched, got)
		svc.AssertExpectations(t)
	})

	t.Run("trims the reason before sending", func(t *testing.T) {
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusDelayed}, nil).Once()
		svc.On("UpdateStatus", ctx, orderID, gateway.StatusUpdate{Status: entities.StatusDelayed, Reason: "no answer"}).
			Return(entities.Order{ID: orderID, Status: entities.StatusDelayed}, nil).Once()
		svc.On("Refetch", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusDelayed}, nil).Once()

		_, err := newController(svc).Submit(ctx, orderID, statusPtr(entities.StatusDelayed), "  no answer  ")
		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("nothing selected", func(t *testing.T) {
		svc := new(orderServiceMock)
		_, err := newController(svc).Submit(ctx, orderID, nil, "reason")
		assert.ErrorIs(t, err, transition.ErrNoStatusSelected)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing reason issues no request", func(t *testing.T) {
		svc := new(orderServiceMock)
		_, err := newController(svc).Submit(ctx, orderID, statusPtr(entities.StatusDelayed), "   ")
		assert.ErrorIs(t, err, transition.ErrReasonRequired)
		svc.AssertNotCalled(t, "Order", mock.Anything, mock.Anything)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("illegal transition issues no request", func(t *testing.T) {
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusDelivered}, nil).Once()

		_, err := newController(svc).Submit(ctx, orderID, statusPtr(entities.StatusCancelled), "refused")
		assert.ErrorIs(t, err, transition.ErrIllegalTransition)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("server rejection is returned as-is", func(t *testing.T) {
		serverErr := errors.New("reason is required")
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}, nil).Once()
		svc.On("UpdateStatus", ctx, orderID, mock.Anything).
			Return(entities.Order{}, serverErr).Once()

		_, err := newController(svc).Submit(ctx, orderID, statusPtr(entities.StatusCancelled), "refused")
		assert.ErrorIs(t, err, serverErr)
		svc.AssertNotCalled(t, "Refetch", mock.Anything, mock.Anything)
	})
}

func TestController_Accept(t *testing.T) {
	ctx := context.Background()
	const orderID = int64(42)

	t.Run("claims and re-fetches", func(t *testing.T) {
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusAccepted}, nil).Once()
		svc.On("Accept", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}, nil).Once()
		refetched := entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}
		svc.On("Refetch", ctx, orderID).Return(refetched, nil).Once()

		got, err := newController(svc).Accept(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusAssignedToDelivery, got.Status)
		assert.Equal(t,
			[]entities.OrderStatus{entities.StatusDelivered, entities.StatusCancelled, entities.StatusDelayed},
			got.Status.NextStatuses())
		svc.AssertExpectations(t)
	})

	t.Run("cannot accept an order already assigned", func(t *testing.T) {
		svc := new(orderServiceMock)
		svc.On("Order", ctx, orderID).
			Return(entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}, nil).Once()

		_, err := newController(svc).Accept(ctx, orderID)
		assert.ErrorIs(t, err, transition.ErrIllegalTransition)
		svc.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
	})
}

func TestController_SingleSubmissionInFlight(t *testing.T) {
	ctx := context.Background()
	const orderID = int64(42)

	release := make(chan struct{})
	entered := make(chan struct{})

	svc := new(orderServiceMock)
	svc.On("Order", ctx, orderID).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(entities.Order{ID: orderID, Status: entities.StatusAssignedToDelivery}, nil).Once()
	svc.On("UpdateStatus", ctx, orderID, mock.Anything).
		Return(entities.Order{ID: orderID, Status: entities.StatusDelivered}, nil).Once()
	svc.On("Refetch", ctx, orderID).
		Return(entities.Order{ID: orderID, Status: entities.StatusDelivered}, nil).Once()

	ctrl := newController(svc)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(ctx, orderID, statusPtr(entities.StatusDelivered), "")
		done <- err
	}()

	<-entered
	_, err := ctrl.Submit(ctx, orderID, statusPtr(entities.StatusDelivered), "")
	assert.ErrorIs(t, err, transition.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	svc.AssertExpectations(t)
}
