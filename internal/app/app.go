package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/admin"
	"github.com/fastorderfood/storefront/internal/backend"
	"github.com/fastorderfood/storefront/internal/cart"
	"github.com/fastorderfood/storefront/internal/catalog"
	"github.com/fastorderfood/storefront/internal/checkout"
	"github.com/fastorderfood/storefront/internal/domain"
	healthcheck "github.com/fastorderfood/storefront/internal/health"
	"github.com/fastorderfood/storefront/internal/metrics"
	"github.com/fastorderfood/storefront/internal/server"
	"github.com/fastorderfood/storefront/internal/storage/memory"
	"github.com/fastorderfood/storefront/internal/version"
)

// Config описывает минимальные настройки запуска витрины.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	BackendURL  string
	APIKey      string
	StateDir    string
	PostgresDSN string
}

// DefaultConfig возвращает базовые адреса и URL ресторанного API.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		BackendURL:  "http://localhost:5079/api",
	}
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repo, pgStore := newCartStateRepository(ctx, cfg, logger)
	if pgStore != nil {
		defer func() {
			if err := pgStore.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
	}

	m := metrics.NewStorefrontMetrics()

	carts := cart.NewStore(repo, logger.WithField("component", "cart-store"))
	carts.Subscribe(func(string, domain.CartState) {
		m.SetOpenCarts(carts.OpenCarts())
	})

	client := backend.NewClient(cfg.BackendURL, cfg.APIKey, logger.WithField("component", "backend-client"))
	cat := catalog.NewService(client, logger.WithField("component", "catalog"), m)
	submitter := checkout.NewSubmitter(carts, client, logger.WithField("component", "checkout"), m)
	adminSvc := admin.NewService(memory.NewSessionRepository(), logger.WithField("component", "admin"))

	srv := server.New(carts, cat, submitter, client, adminSvc, logger.WithField("component", "http-server"))

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if pgStore != nil {
		healthHandler.Register(healthcheck.Probe{
			Name:     "postgres",
			Critical: true,
			Fn: func() error {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return pgStore.Ping(pingCtx)
			},
		})
	}
	// Бэкенд ресторана не критичен для liveness: витрина остаётся
	// работоспособной, деградирует только меню.
	healthHandler.Register(healthcheck.Probe{
		Name: "backend",
		Fn: func() error {
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_, err := client.StoreInfo(probeCtx)
			return err
		},
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Handler()}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("витрина слушает %s", cfg.HTTPAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
