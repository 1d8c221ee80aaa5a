// Package checkout реализует оформление заказа: валидацию черновика,
// защиту от повторной отправки и сброс корзины после успеха.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/cart"
	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/metrics"
)

// API — нужная оформлению часть клиента ресторанного API.
type API interface {
	Checkout(ctx context.Context, sub domain.OrderSubmission) (string, error)
}

// Confirmation возвращается после успешного оформления.
type Confirmation struct {
	OrderNumber string
	OrderTime   time.Time
	PickupTime  string
}

// Submitter оформляет заказы. На каждый профиль допускается не более
// одной отправки одновременно: повторное нажатие кнопки не должно
// породить второй заказ.
type Submitter struct {
	carts   *cart.Store
	api     API
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
	now     func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSubmitter создаёт Submitter.
func NewSubmitter(carts *cart.Store, api API, logger *log.Entry, m *metrics.StorefrontMetrics) *Submitter {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Submitter{
		carts:    carts,
		api:      api,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

// Submit нормализует и проверяет черновик, отправляет заказ и при
// успехе очищает корзину профиля вместе со временем самовывоза.
// При любой ошибке корзина остаётся нетронутой.
func (s *Submitter) Submit(ctx context.Context, profileID string, draft domain.OrderDraft) (Confirmation, error) {
	items := s.carts.Cart(profileID)
	if len(items) == 0 {
		return Confirmation{}, domain.ErrEmptyCart
	}

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.RecordCheckoutRejected()
		}
		return Confirmation{}, err
	}

	if err := s.acquire(profileID); err != nil {
		return Confirmation{}, err
	}
	defer s.release(profileID)

	pickupTime := s.carts.PickupTime(profileID)
	sub := buildSubmission(items, draft, pickupTime)

	start := s.now()
	orderNumber, err := s.api.Checkout(ctx, sub)
	if s.metrics != nil {
		s.metrics.RecordCheckoutDuration(s.now().Sub(start))
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailed()
		}
		s.logger.WithError(err).WithField("profile_id", profileID).Error("order submission failed")
		return Confirmation{}, fmt.Errorf("submit order: %w", err)
	}

	s.carts.Clear(profileID)
	if s.metrics != nil {
		s.metrics.RecordCheckoutSubmitted()
	}
	s.logger.WithFields(log.Fields{
		"profile_id":   profileID,
		"order_number": orderNumber,
		"amount":       sub.Amount,
	}).Info("order submitted")

	return Confirmation{
		OrderNumber: orderNumber,
		OrderTime:   s.now(),
		PickupTime:  pickupTime,
	}, nil
}

func (s *Submitter) acquire(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[profileID] {
		return domain.ErrSubmissionInFlight
	}
	s.inFlight[profileID] = true
	return nil
}

func (s *Submitter) release(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profileID)
}

func buildSubmission(items []domain.CartItem, draft domain.OrderDraft, pickupTime string) domain.OrderSubmission {
	details := make([]domain.OrderDetail, 0, len(items))
	for _, it := range items {
		details = append(details, domain.OrderDetail{
			ProdID:   it.ID,
			ProdName: it.Name,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}
	return domain.OrderSubmission{
		Amount:     cart.Amount(items),
		Name:       draft.Name,
		Mobile:     draft.Mobile,
		Carrier:    draft.Carrier,
		Note:       draft.Note,
		PickupTime: pickupTime,
		State:      domain.OrderStatePending,
		Details:    details,
	}
}
