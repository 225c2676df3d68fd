// Package service sits between the view layer and the gateway. It adds the
// one piece of client-side state the gateway itself must not have: a bounded,
// explicitly-invalidated cache of orders keyed by id. Every successful
// mutation invalidates its order so the next read comes from the server.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
)

// OrderAPI is the slice of the gateway this service drives.
type OrderAPI interface {
	Order(ctx context.Context, token string, id int64) (entities.Order, error)
	AcceptOrder(ctx context.Context, token string, id int64) (entities.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, id int64, update gateway.StatusUpdate) (entities.Order, error)
	DeliveryAttempts(ctx context.Context, token string, id int64) ([]entities.DeliveryAttempt, error)
	Notes(ctx context.Context, token string, orderID int64) ([]entities.DeliveryNote, error)
	CreateNote(ctx context.Context, token string, orderID int64, input gateway.NoteInput) (entities.DeliveryNote, error)
	UpdateNote(ctx context.Context, token string, orderID, noteID int64, input gateway.NoteInput) (entities.DeliveryNote, error)
	DeleteNote(ctx context.Context, token string, orderID, noteID int64) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Invalidate(key string)
}

// TokenSource supplies the current bearer token; empty means signed out.
type TokenSource interface {
	Token() string
}

type Orders struct {
	logger *slog.Logger
	api    OrderAPI
	cache  Cache
	tokens TokenSource
}

func NewOrders(logger *slog.Logger, api OrderAPI, cache Cache, tokens TokenSource) *Orders {
	return &Orders{
		logger: logger.With(slog.String("service", "orders")),
		api:    api,
		cache:  cache,
		tokens: tokens,
	}
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *Orders) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", entities.ErrNotAuthenticated
	}
	return token, nil
}

// Order returns the order, from cache when a fresh copy is present.
func (s *Orders) Order(ctx context.Context, id int64) (entities.Order, error) {
	key := cacheKey(id)
	if data, ok := s.cache.Get(key); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, nil
		}
		// a corrupt entry is dropped and we fall through to the server
		s.cache.Invalidate(key)
	}
	return s.Refetch(ctx, id)
}

// Refetch bypasses the cache, reads the order from the server and caches the
// result. Controllers call it after every mutation: the server is the source
// of truth and no partial fields are merged client-side.
func (s *Orders) Refetch(ctx context.Context, id int64) (entities.Order, error) {
	token, err := s.token()
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.api.Order(ctx, token, id)
	if err != nil {
		return entities.Order{}, err
	}

	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.Int64("order_id", id), slog.Any("error", err))
		return order, nil
	}
	s.cache.Set(cacheKey(id), data)
	return order, nil
}

// Invalidate drops the cached copy of an order.
func (s *Orders) Invalidate(id int64) {
	s.cache.Invalidate(cacheKey(id))
}

// Accept claims the order for this courier and invalidates its cache entry.
func (s *Orders) Accept(ctx context.Context, id int64) (entities.Order, error) {
	token, err := s.token()
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.api.AcceptOrder(ctx, token, id)
	if err != nil {
		return entities.Order{}, err
	}
	s.Invalidate(id)
	s.logger.Debug("order accepted", slog.Int64("order_id", id))
	return order, nil
}

// UpdateStatus submits a status transition and invalidates the cache entry.
func (s *Orders) UpdateStatus(ctx context.Context, id int64, update gateway.StatusUpdate) (entities.Order, error) {
	token, err := s.token()
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.api.UpdateOrderStatus(ctx, token, id, update)
	if err != nil {
		return entities.Order{}, err
	}
	s.Invalidate(id)
	s.logger.Debug("order status updated",
		slog.Int64("order_id", id),
		slog.String("status", update.Status.String()),
	)
	return order, nil
}

// Detail is everything the order-detail screen shows. The attempt log and
// note list resolve independently of the order: each carries its own error
// so one failing section does not blank the others.
type Detail struct {
	Order entities.Order

	Attempts    []entities.DeliveryAttempt
	AttemptsErr error

	Notes    []entities.DeliveryNote
	NotesErr error
}

// OrderDetail fetches the order, its attempts and its notes concurrently.
// Only a failure to load the order itself fails the call.
func (s *Orders) OrderDetail(ctx context.Context, id int64) (Detail, error) {
	token, err := s.token()
	if err != nil {
		return Detail{}, err
	}

	var detail Detail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		order, err := s.Order(gctx, id)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		detail.Order = order
		return nil
	})
	g.Go(func() error {
		detail.Attempts, detail.AttemptsErr = s.api.DeliveryAttempts(gctx, token, id)
		return nil
	})
	g.Go(func() error {
		detail.Notes, detail.NotesErr = s.api.Notes(gctx, token, id)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Detail{}, err
	}
	return detail, nil
}

// Attempts returns the delivery-attempt log for an order.
func (s *Orders) Attempts(ctx context.Context, id int64) ([]entities.DeliveryAttempt, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.DeliveryAttempts(ctx, token, id)
}

// Notes returns the delivery notes visible on an order.
func (s *Orders) Notes(ctx context.Context, id int64) ([]entities.DeliveryNote, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.Notes(ctx, token, id)
}

// CreateNote adds a note and invalidates the order it belongs to.
func (s *Orders) CreateNote(ctx context.Context, orderID int64, input gateway.NoteInput) (entities.DeliveryNote, error) {
	token, err := s.token()
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	note, err := s.api.CreateNote(ctx, token, orderID, input)
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	s.Invalidate(orderID)
	return note, nil
}

// UpdateNote rewrites a note and invalidates the order it belongs to.
func (s *Orders) UpdateNote(ctx context.Context, orderID, noteID int64, input gateway.NoteInput) (entities.DeliveryNote, error) {
	token, err := s.token()
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	note, err := s.api.UpdateNote(ctx, token, orderID, noteID, input)
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	s.Invalidate(orderID)
	return note, nil
}

// DeleteNote removes a note and invalidates the order it belongs to.
func (s *Orders) DeleteNote(ctx context.Context, orderID, noteID int64) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.api.DeleteNote(ctx, token, orderID, noteID); err != nil {
		return err
	}
	s.Invalidate(orderID)
	return nil
}
