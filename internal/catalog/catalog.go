// Package catalog собирает меню витрины из ресторанного API.
package catalog

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/metrics"
)

// API — нужная каталогу часть клиента ресторанного API.
type API interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// Menu — полное меню: категории и товары в порядке категорий.
type Menu struct {
	Categories []domain.Category
	Products   []domain.Product
}

// Service загружает меню, забирая товары всех категорий параллельно.
type Service struct {
	api     API
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// NewService создаёт сервис каталога.
func NewService(api API, logger *log.Entry, m *metrics.StorefrontMetrics) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{api: api, logger: logger, metrics: m}
}

// Load возвращает меню. Товары категорий запрашиваются конкурентно,
// но итоговый порядок следует порядку категорий.
func (s *Service) Load(ctx context.Context) (Menu, error) {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.recordFailure()
		return Menu{}, fmt.Errorf("load categories: %w", err)
	}

	perCategory := make([][]domain.Product, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range categories {
		g.Go(func() error {
			products, err := s.api.ProductsByCategory(gctx, cat.ID)
			if err != nil {
				return fmt.Errorf("load products of category %s: %w", cat.ID, err)
			}
			perCategory[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.recordFailure()
		return Menu{}, err
	}

	var products []domain.Product
	for _, chunk := range perCategory {
		products = append(products, chunk...)
	}

	if s.metrics != nil {
		s.metrics.RecordCatalogLoad()
	}
	s.logger.WithFields(log.Fields{
		"categories": len(categories),
		"products":   len(products),
	}).Debug("catalog loaded")

	return Menu{Categories: categories, Products: products}, nil
}

func (s *Service) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordCatalogFailure()
	}
}
