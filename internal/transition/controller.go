// Package transition gates order status changes: which targets are offered
// for an order, what input they require, and how the client reconciles after
// submitting one. All real validation happens server-side too; the checks
// here exist so no request is issued for an obviously illegal submission.
package transition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
)

var (
	// ErrNoStatusSelected: Submit called without a target status.
	ErrNoStatusSelected = errors.New("no status selected")

	// ErrReasonRequired: the selected status needs a non-empty reason.
	ErrReasonRequired = errors.New("a reason is required for this status")

	// ErrIllegalTransition: the order's current status does not permit the
	// selected target.
	ErrIllegalTransition = errors.New("status transition not permitted")

	// ErrSubmissionInFlight: another submission from this controller has not
	// finished yet.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// CanSubmit reports whether a transition form is submittable: a status must
// be selected, and unless it is DELIVERED the reason must be non-empty after
// trimming. Pure; independent of transport and of the order's current state.
func CanSubmit(selected *entities.OrderStatus, reason string) bool {
	if selected == nil {
		return false
	}
	if *selected == entities.StatusDelivered {
		return true
	}
	return strings.TrimSpace(reason) != ""
}

// OrderService is the slice of the order service the controller drives.
type OrderService interface {
	Order(ctx context.Context, id int64) (entities.Order, error)
	Accept(ctx context.Context, id int64) (entities.Order, error)
	UpdateStatus(ctx context.Context, id int64, update gateway.StatusUpdate) (entities.Order, error)
	Refetch(ctx context.Context, id int64) (entities.Order, error)
}

type Controller struct {
	logger *slog.Logger
	svc    OrderService

	mu       sync.Mutex
	inFlight bool
}

func NewController(logger *slog.Logger, svc OrderService) *Controller {
	return &Controller{
		logger: logger.With(slog.String("component", "transition")),
		svc:    svc,
	}
}

// Options returns the statuses the UI should offer for an order. Empty for
// terminal orders: every action is hidden once an order is DELIVERED,
// CANCELLED or REJECTED.
func (c *Controller) Options(order entities.Order) []entities.OrderStatus {
	return order.Status.NextStatuses()
}

// Accept claims an ACCEPTED order and returns the re-fetched order, which
// the server will have moved to ASSIGNED_TO_DELIVERY.
func (c *Controller) Accept(ctx context.Context, orderID int64) (entities.Order, error) {
	if !c.begin() {
		return entities.Order{}, ErrSubmissionInFlight
	}
	defer c.end()

	current, err := c.svc.Order(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !current.Status.CanTransition(entities.StatusAssignedToDelivery) {
		return entities.Order{}, fmt.Errorf("%w: cannot accept order in status %s", ErrIllegalTransition, current.Status)
	}

	if _, err := c.svc.Accept(ctx, orderID); err != nil {
		return entities.Order{}, err
	}
	return c.svc.Refetch(ctx, orderID)
}

// Submit validates and sends a status transition, then discards all local
// assumptions and re-fetches the order in full — the server owns attempt
// counters, timestamps and earnings, so nothing is merged client-side.
//
// On any error the order's local state is untouched, so the caller's form
// (selected status, typed reason) can simply be retried.
func (c *Controller) Submit(ctx context.Context, orderID int64, selected *entities.OrderStatus, reason string) (entities.Order, error) {
	if selected == nil {
		return entities.Order{}, ErrNoStatusSelected
	}
	if !CanSubmit(selected, reason) {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrReasonRequired, *selected)
	}

	if !c.begin() {
		return entities.Order{}, ErrSubmissionInFlight
	}
	defer c.end()

	current, err := c.svc.Order(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !current.Status.CanTransition(*selected) {
		return entities.Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, *selected)
	}

	update := gateway.StatusUpdate{
		Status: *selected,
		Reason: strings.TrimSpace(reason),
	}
	if _, err := c.svc.UpdateStatus(ctx, orderID, update); err != nil {
		c.logger.Info("status submission failed",
			slog.Int64("order_id", orderID),
			slog.String("status", selected.String()),
			slog.Any("error", err),
		)
		return entities.Order{}, err
	}

	return c.svc.Refetch(ctx, orderID)
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}
