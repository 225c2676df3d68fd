package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ichaoui56/sonic-courier/internal/entities"
)

// LatestOrders returns the most recent orders assigned to the courier.
func (g *Gateway) LatestOrders(ctx context.Context, token string) ([]entities.Order, error) {
	return g.listOrders(ctx, "latest_orders", "/api/mobile/orders/latest", token)
}

// AllOrders returns every order visible to the courier.
func (g *Gateway) AllOrders(ctx context.Context, token string) ([]entities.Order, error) {
	return g.listOrders(ctx, "all_orders", "/api/mobile/orders", token)
}

func (g *Gateway) listOrders(ctx context.Context, op, path, token string) ([]entities.Order, error) {
	var out ordersResponse
	err := g.do(ctx, call{op: op, method: http.MethodGet, path: path, token: token, out: &out})
	if err != nil {
		return nil, err
	}
	if out.Orders == nil {
		return nil, fmt.Errorf("%w: missing orders field", ErrUnexpectedResponse)
	}
	return ordersToEntities(out.Orders), nil
}

// HistoryQuery selects one page of order history. A nil Status means no
// status filter is sent.
type HistoryQuery struct {
	Status *entities.OrderStatus
	Take   int
	Skip   int
}

// HistoryPage is one server page plus its continuation signal.
type HistoryPage struct {
	Orders     []entities.Order
	HasMore    bool
	TotalCount int
}

// OrderHistory fetches one page of completed/past orders.
func (g *Gateway) OrderHistory(ctx context.Context, token string, q HistoryQuery) (HistoryPage, error) {
	query := url.Values{}
	if q.Status != nil {
		query.Set("status", q.Status.String())
	}
	if q.Take > 0 {
		query.Set("take", strconv.Itoa(q.Take))
	}
	if q.Skip > 0 {
		query.Set("skip", strconv.Itoa(q.Skip))
	}

	var out historyResponse
	err := g.do(ctx, call{
		op:     "order_history",
		method: http.MethodGet,
		path:   "/api/mobile/orders",
		query:  query,
		token:  token,
		out:    &out,
	})
	if err != nil {
		return HistoryPage{}, err
	}
	if out.Orders == nil {
		return HistoryPage{}, fmt.Errorf("%w: missing orders field", ErrUnexpectedResponse)
	}
	return HistoryPage{
		Orders:     ordersToEntities(out.Orders),
		HasMore:    out.HasMore,
		TotalCount: out.TotalCount,
	}, nil
}

// Order fetches one order in full.
func (g *Gateway) Order(ctx context.Context, token string, id int64) (entities.Order, error) {
	var out orderDetailResponse
	err := g.do(ctx, call{
		op:     "order",
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/mobile/orders/%d", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return entities.Order{}, err
	}
	return orderToEntity(*out.Order), nil
}

// AcceptOrder claims an ACCEPTED order for this courier. The returned order
// is the server's partial echo; callers re-fetch for the full record.
func (g *Gateway) AcceptOrder(ctx context.Context, token string, id int64) (entities.Order, error) {
	var out mutationResponse
	err := g.do(ctx, call{
		op:     "accept_order",
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/mobile/orders/%d/accept", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return entities.Order{}, err
	}
	return stubToEntity(out.Order), nil
}

// StatusUpdate is the payload of a status transition submission.
type StatusUpdate struct {
	Status   entities.OrderStatus
	Reason   string
	Notes    string
	Location string
}

// UpdateOrderStatus submits a status transition. The server validates the
// transition again and records a delivery attempt.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, token string, id int64, update StatusUpdate) (entities.Order, error) {
	var out mutationResponse
	err := g.do(ctx, call{
		op:     "update_order_status",
		method: http.MethodPatch,
		path:   fmt.Sprintf("/api/mobile/orders/%d/status", id),
		token:  token,
		body: statusUpdateRequest{
			Status:   update.Status.String(),
			Reason:   update.Reason,
			Notes:    update.Notes,
			Location: update.Location,
		},
		out: &out,
	})
	if err != nil {
		return entities.Order{}, err
	}
	return stubToEntity(out.Order), nil
}

// DeliveryAttempts returns the append-only attempt log for an order.
func (g *Gateway) DeliveryAttempts(ctx context.Context, token string, id int64) ([]entities.DeliveryAttempt, error) {
	var out attemptsResponse
	err := g.do(ctx, call{
		op:     "delivery_attempts",
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/mobile/orders/%d/attempts", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Attempts == nil {
		return nil, fmt.Errorf("%w: missing attempts field", ErrUnexpectedResponse)
	}
	attempts := make([]entities.DeliveryAttempt, 0, len(out.Attempts))
	for _, m := range out.Attempts {
		attempts = append(attempts, attemptToEntity(m))
	}
	return attempts, nil
}
