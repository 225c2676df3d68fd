package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type opKey struct{}

// withOperation tags the request context with the gateway operation name so
// the transport middleware can label logs and metrics with it.
func withOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opKey{}, op)
}

func operationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(opKey{}).(string); ok {
		return op
	}
	return "unknown"
}

// roundTripper instruments every outgoing request: a fresh X-Request-Id,
// a structured log line, and prometheus counters when metrics are wired.
type roundTripper struct {
	next    http.RoundTripper
	logger  *slog.Logger
	metrics *Metrics
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	op := operationFrom(req.Context())
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	if rt.metrics != nil {
		rt.metrics.inFlight.Inc()
		defer rt.metrics.inFlight.Dec()
	}

	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	elapsed := time.Since(start)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	if rt.metrics != nil {
		rt.metrics.requests.WithLabelValues(op, req.Method, status).Inc()
		rt.metrics.durations.WithLabelValues(op, req.Method, status).Observe(elapsed.Seconds())
	}

	if err != nil {
		rt.logger.Error("request failed",
			slog.String("operation", op),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("request_id", reqID),
			slog.Any("error", err),
		)
		return nil, err
	}

	rt.logger.Debug("request",
		slog.String("operation", op),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("status", status),
		slog.String("duration", elapsed.String()),
		slog.String("request_id", reqID),
	)
	return resp, nil
}
