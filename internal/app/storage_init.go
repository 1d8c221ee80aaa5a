package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/storage/file"
	"github.com/fastorderfood/storefront/internal/storage/memory"
	"github.com/fastorderfood/storefront/internal/storage/postgres"
)

// newCartStateRepository выбирает хранилище состояния корзин:
// postgres при заданном DSN, иначе файловое при заданном каталоге,
// иначе память. Недоступное хранилище не роняет запуск — деградируем
// на ступень ниже с предупреждением в логе.
func newCartStateRepository(ctx context.Context, cfg Config, logger *log.Entry) (domain.CartStateRepository, *postgres.Store) {
	storageLogger := logger.WithField("component", "storage")

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			storageLogger.WithError(err).Warn("failed to open postgres, falling back")
		} else if err := store.EnsureSchema(ctx); err != nil {
			storageLogger.WithError(err).Warn("failed to ensure postgres schema, falling back")
			_ = store.Close()
		} else {
			storageLogger.Info("cart state storage: postgres")
			return postgres.NewCartStateRepository(store, storageLogger), store
		}
	}

	if cfg.StateDir != "" {
		repo, err := file.NewCartStateRepository(cfg.StateDir, storageLogger)
		if err != nil {
			storageLogger.WithError(err).Warn("failed to init file storage, falling back to memory")
		} else {
			storageLogger.WithField("dir", cfg.StateDir).Info("cart state storage: file")
			return repo, nil
		}
	}

	storageLogger.Info("cart state storage: memory")
	return memory.NewCartStateRepository(), nil
}
