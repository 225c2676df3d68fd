package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ichaoui56/sonic-courier/internal/config"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
	"github.com/ichaoui56/sonic-courier/internal/service"
	"github.com/ichaoui56/sonic-courier/internal/session"
	"github.com/ichaoui56/sonic-courier/internal/transition"
	"github.com/ichaoui56/sonic-courier/internal/viewmodel"
	"github.com/ichaoui56/sonic-courier/pkg/cache"
)

const historyPageSize = 20

// Application wires the client together: gateway -> session/service ->
// controller and view-models, plus the optional metrics listener.
type Application struct {
	logger     *slog.Logger
	cache      *cache.LRUCache
	metricsSrv *http.Server

	Gateway     *gateway.Gateway
	Session     *session.Store
	Orders      *service.Orders
	Transitions *transition.Controller
	History     *viewmodel.HistoryModel
	Latest      *viewmodel.LatestModel
}

func New(logger *slog.Logger, conf config.Config) *Application {
	registry := prometheus.NewRegistry()

	gw := gateway.New(logger, conf.API.BaseURL, conf.API.Timeout, registry)
	keychain := session.NewKeychain(conf.TokenFile)
	sess := session.NewStore(logger, gw, keychain)

	lru := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	orders := service.NewOrders(logger, gw, lru, sess)

	a := &Application{
		logger:      logger,
		cache:       lru,
		Gateway:     gw,
		Session:     sess,
		Orders:      orders,
		Transitions: transition.NewController(logger, orders),
		History:     viewmodel.NewHistoryModel(logger, gw, sess, historyPageSize),
		Latest:      viewmodel.NewLatestModel(logger, gw, sess),
	}

	if conf.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		a.metricsSrv = &http.Server{Addr: conf.MetricsAddr, Handler: mux}
	}

	return a
}

// Start runs the cache janitor, the metrics listener when configured, and
// the silent session validation that decides signedIn/signedOut.
func (a *Application) Start(ctx context.Context) {
	a.cache.StartJanitor(ctx)

	if a.metricsSrv != nil {
		go func() {
			a.logger.Info("metrics listener started", slog.String("addr", a.metricsSrv.Addr))
			if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics listener failed", slog.Any("error", err))
			}
		}()
	}

	a.Session.Refresh(ctx)
}

const shutdownTimeout = 5 * time.Second

func (a *Application) Stop() {
	if a.metricsSrv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.metricsSrv.Shutdown(ctx); err != nil {
		a.logger.Error("failed to shut down metrics listener", slog.Any("error", err))
	}
}
