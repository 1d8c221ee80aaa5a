package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит метрики витрины.
type StorefrontMetrics struct {
	// Счётчики оформления заказов
	checkoutSubmitted prometheus.Counter
	checkoutFailed    prometheus.Counter
	checkoutRejected  prometheus.Counter

	// Гистограмма времени оформления
	checkoutDuration prometheus.Histogram

	// Счётчики загрузок каталога
	catalogLoads    prometheus.Counter
	catalogFailures prometheus.Counter

	// Gauge открытых корзин
	openCarts prometheus.Gauge
}

// NewStorefrontMetrics создаёт новый экземпляр метрик витрины.
func NewStorefrontMetrics() *StorefrontMetrics {
	return newStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		checkoutSubmitted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_submitted_total",
			Help: "Total number of orders submitted to the restaurant backend",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_failed_total",
			Help: "Total number of order submissions that failed upstream",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_rejected_total",
			Help: "Total number of order drafts rejected by validation",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_duration_seconds",
			Help:    "Duration of order submission in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		catalogLoads: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_catalog_loads_total",
			Help: "Total number of catalog loads from the restaurant backend",
		}),
		catalogFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_catalog_failures_total",
			Help: "Total number of failed catalog loads",
		}),
		openCarts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_open_carts",
			Help: "Number of profiles with a non-empty cart",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCheckoutSubmitted увеличивает счётчик отправленных заказов.
func (m *StorefrontMetrics) RecordCheckoutSubmitted() {
	m.checkoutSubmitted.Inc()
}

// RecordCheckoutFailed увеличивает счётчик неудачных отправок.
func (m *StorefrontMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

// RecordCheckoutRejected увеличивает счётчик забракованных черновиков.
func (m *StorefrontMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

// RecordCheckoutDuration записывает время оформления заказа.
func (m *StorefrontMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordCatalogLoad увеличивает счётчик загрузок каталога.
func (m *StorefrontMetrics) RecordCatalogLoad() {
	m.catalogLoads.Inc()
}

// RecordCatalogFailure увеличивает счётчик неудачных загрузок каталога.
func (m *StorefrontMetrics) RecordCatalogFailure() {
	m.catalogFailures.Inc()
}

// SetOpenCarts выставляет количество профилей с непустой корзиной.
func (m *StorefrontMetrics) SetOpenCarts(n int) {
	m.openCarts.Set(float64(n))
}
