// Package gateway is the typed HTTP boundary to the sonic-delivery mobile
// API. Every operation is a single attempt: no retries and no caching happen
// here. Responses are decoded into wire models, checked against their schema
// and mapped to entities; anything that fails the check surfaces as
// ErrUnexpectedResponse rather than a silently defaulted struct.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

type Gateway struct {
	logger   *slog.Logger
	client   *http.Client
	baseURL  string
	validate *validator.Validate
}

// New builds a gateway for the API at baseURL. reg may be nil to disable
// client metrics.
func New(logger *slog.Logger, baseURL string, timeout time.Duration, reg prometheus.Registerer) *Gateway {
	logger = logger.With(slog.String("component", "gateway"))

	var metrics *Metrics
	if reg != nil {
		metrics = NewMetrics(reg)
	}

	return &Gateway{
		logger:  logger,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &roundTripper{
				next:    http.DefaultTransport,
				logger:  logger,
				metrics: metrics,
			},
		},
		validate: validator.New(),
	}
}

// call describes one API request. out, when non-nil, must be a pointer to a
// wire model; it is decoded and schema-checked before the call returns.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
	out    any
}

func (g *Gateway) do(ctx context.Context, c call) error {
	u := g.baseURL + c.path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	var reqBody io.Reader
	if c.body != nil {
		data, err := json.Marshal(c.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(withOperation(ctx, c.op), c.method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, serverMessage(data))
	}

	if c.out == nil {
		return nil
	}

	if err := json.Unmarshal(data, c.out); err != nil {
		return fmt.Errorf("%w: body is not valid JSON", ErrUnexpectedResponse)
	}
	if err := g.validate.Struct(c.out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// errorBody is the error envelope the backend uses across endpoints.
type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// serverMessage extracts the server's message, falling back to a generic one
// when the body is not parseable JSON.
func serverMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "request failed"
}

func classifyStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	default:
		return fmt.Errorf("%s (status %d)", message, status)
	}
}
