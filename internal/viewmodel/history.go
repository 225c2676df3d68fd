// Package viewmodel holds the screen-facing state of the client: the order
// history's filter and page accumulation, and the latest-orders list with
// its client-side search. Models are mutex-guarded; each is owned by the
// screen that renders it.
package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
)

// HistoryAPI is the slice of the gateway the history model uses.
type HistoryAPI interface {
	OrderHistory(ctx context.Context, token string, q gateway.HistoryQuery) (gateway.HistoryPage, error)
}

// TokenSource supplies the current bearer token; empty means signed out.
type TokenSource interface {
	Token() string
}

// HistoryModel accumulates pages of order history under one filter.
//
// Pages are appended in arrival order with no de-duplication: if the backing
// data shifts between page fetches the server may repeat or skip rows, which
// is a known backend limitation, not something this model papers over.
type HistoryModel struct {
	logger   *slog.Logger
	api      HistoryAPI
	tokens   TokenSource
	pageSize int

	mu         sync.Mutex
	filter     string
	orders     []entities.Order
	hasMore    bool
	totalCount int
	loading    bool
	// generation invalidates in-flight responses when the filter changes,
	// so a stale page never lands in a list fetched under a new filter.
	generation int
}

func NewHistoryModel(logger *slog.Logger, api HistoryAPI, tokens TokenSource, pageSize int) *HistoryModel {
	return &HistoryModel{
		logger:   logger.With(slog.String("viewmodel", "history")),
		api:      api,
		tokens:   tokens,
		pageSize: pageSize,
		filter:   "All",
		hasMore:  true,
	}
}

// SetFilter switches the active filter, clears the accumulated list and
// resets pagination to the first page before fetching it. An in-flight load
// under the old filter is abandoned (its response is discarded on arrival).
func (m *HistoryModel) SetFilter(ctx context.Context, label string) error {
	m.mu.Lock()
	m.filter = label
	m.orders = nil
	m.totalCount = 0
	m.hasMore = true
	m.generation++
	gen := m.generation
	m.loading = true
	m.mu.Unlock()

	return m.fetch(ctx, gen, label, 0)
}

// LoadMore requests the next page. It is a no-op while a load is in flight
// or once the server has signaled there are no more pages.
func (m *HistoryModel) LoadMore(ctx context.Context) error {
	m.mu.Lock()
	if m.loading || !m.hasMore {
		m.mu.Unlock()
		return nil
	}
	gen := m.generation
	label := m.filter
	skip := len(m.orders)
	m.loading = true
	m.mu.Unlock()

	return m.fetch(ctx, gen, label, skip)
}

// fetch loads one page and applies it unless the filter changed underneath.
// A failed load leaves whatever is already accumulated intact.
func (m *HistoryModel) fetch(ctx context.Context, gen int, label string, skip int) error {
	page, err := m.api.OrderHistory(ctx, m.tokens.Token(), gateway.HistoryQuery{
		Status: FilterParam(label),
		Take:   m.pageSize,
		Skip:   skip,
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		// superseded by a filter change; the fetch that replaced us owns
		// the loading flag now
		return nil
	}
	m.loading = false

	if err != nil {
		m.logger.Warn("history page load failed",
			slog.String("filter", label),
			slog.Int("skip", skip),
			slog.Any("error", err),
		)
		return err
	}

	m.orders = append(m.orders, page.Orders...)
	m.hasMore = page.HasMore
	m.totalCount = page.TotalCount
	return nil
}

// Orders returns a copy of the accumulated list.
func (m *HistoryModel) Orders() []entities.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

func (m *HistoryModel) HasMore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasMore
}

func (m *HistoryModel) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalCount
}

func (m *HistoryModel) Filter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

func (m *HistoryModel) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
