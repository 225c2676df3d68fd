package viewmodel

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ichaoui56/sonic-courier/internal/entities"
)

// LatestAPI is the slice of the gateway the latest-orders model uses.
type LatestAPI interface {
	LatestOrders(ctx context.Context, token string) ([]entities.Order, error)
}

// LatestModel holds the home screen's order list. Filtering and search are
// purely client-side here; the server decides what "latest" means.
type LatestModel struct {
	logger *slog.Logger
	api    LatestAPI
	tokens TokenSource

	mu     sync.Mutex
	orders []entities.Order
}

func NewLatestModel(logger *slog.Logger, api LatestAPI, tokens TokenSource) *LatestModel {
	return &LatestModel{
		logger: logger.With(slog.String("viewmodel", "latest")),
		api:    api,
		tokens: tokens,
	}
}

// Load refreshes the list. On failure the previously loaded orders stay
// visible and the error is returned for the screen to surface.
func (m *LatestModel) Load(ctx context.Context) error {
	orders, err := m.api.LatestOrders(ctx, m.tokens.Token())
	if err != nil {
		m.logger.Warn("latest orders load failed", slog.Any("error", err))
		return err
	}

	m.mu.Lock()
	m.orders = orders
	m.mu.Unlock()
	return nil
}

// Orders returns a copy of the current list.
func (m *LatestModel) Orders() []entities.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

// Filtered applies the home screen's display-status filter and free-text
// search (order code, customer, city, product names) to the loaded list.
// displayStatus "Tous" keeps every status.
func (m *LatestModel) Filtered(displayStatus, search string) []entities.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(search))
	var out []entities.Order
	for _, order := range m.orders {
		if displayStatus != "Tous" && DisplayStatus(order.Status) != displayStatus {
			continue
		}
		if query != "" && !matchesSearch(order, query) {
			continue
		}
		out = append(out, order)
	}
	return out
}

func matchesSearch(order entities.Order, query string) bool {
	if strings.Contains(strings.ToLower(order.OrderCode), query) ||
		strings.Contains(strings.ToLower(order.CustomerName), query) ||
		strings.Contains(strings.ToLower(order.City), query) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Product.Name), query) {
			return true
		}
	}
	return false
}
