package gateway

import (
	"context"
	"net/http"

	"github.com/ichaoui56/sonic-courier/internal/entities"
)

// Finance returns the server-computed earnings/COD dashboard.
func (g *Gateway) Finance(ctx context.Context, token string) (entities.FinanceData, error) {
	var out financeResponse
	err := g.do(ctx, call{
		op:     "finance",
		method: http.MethodGet,
		path:   "/api/mobile/finance",
		token:  token,
		out:    &out,
	})
	if err != nil {
		return entities.FinanceData{}, err
	}
	return financeToEntity(out), nil
}

// OrderStats returns the courier's monthly performance summary.
func (g *Gateway) OrderStats(ctx context.Context, token string) (entities.OrderStats, error) {
	var out statsResponse
	err := g.do(ctx, call{
		op:     "order_stats",
		method: http.MethodGet,
		path:   "/api/mobile/orders/stats",
		token:  token,
		out:    &out,
	})
	if err != nil {
		return entities.OrderStats{}, err
	}
	return statsToEntity(out.Stats), nil
}
