package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/app"
	"github.com/fastorderfood/storefront/internal/version"
)

const (
	envHTTPAddr    = "STOREFRONT_HTTP_ADDR"
	envMetricsAddr = "STOREFRONT_METRICS_ADDR"
	envBackendURL  = "STOREFRONT_BACKEND_URL"
	envAPIKey      = "STOREFRONT_API_KEY"
	envStateDir    = "STOREFRONT_STATE_DIR"
	envPostgresDSN = "STOREFRONT_POSTGRES_DSN"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения, позволяя
// переопределить адреса и параметры через переменные окружения.
func readConfigFromEnv(lookup envLookup) app.Config {
	cfg := app.DefaultConfig()

	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				*dst = v
			}
		}
	}
	set(envHTTPAddr, &cfg.HTTPAddr)
	set(envMetricsAddr, &cfg.MetricsAddr)
	set(envBackendURL, &cfg.BackendURL)
	set(envAPIKey, &cfg.APIKey)
	set(envStateDir, &cfg.StateDir)
	set(envPostgresDSN, &cfg.PostgresDSN)
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfigFromEnv(os.LookupEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"backend_url":  cfg.BackendURL,
		"version":      version.GetVersion(),
	}).Info("запускаем витрину")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("витрина остановлена")
}
