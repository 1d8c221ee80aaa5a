package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fastorderfood/storefront/internal/cart"
	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/storage/memory"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   int
	lastSub domain.OrderSubmission
	orderID string
	err     error
	block   chan struct{}
}

func (f *fakeAPI) Checkout(_ context.Context, sub domain.OrderSubmission) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastSub = sub
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.orderID, nil
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger.WithField("component", "checkout-test")
}

func newTestStore(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(memory.NewCartStateRepository(), testLogger())
}

func validDraft() domain.OrderDraft {
	return domain.OrderDraft{Name: "王小明", Mobile: "0912345678", Carrier: "/"}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("p", domain.CartItem{ID: "P1", Name: "滷肉飯", Price: 60, Quantity: 2})
	carts.Add("p", domain.CartItem{ID: "P2", Name: "紅茶", Price: 35, Quantity: 1})
	carts.SetPickupTime("p", "12:30")

	api := &fakeAPI{orderID: "A123"}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	conf, err := sub.Submit(context.Background(), "p", validDraft())
	require.NoError(t, err)
	require.Equal(t, "A123", conf.OrderNumber)
	require.Equal(t, "12:30", conf.PickupTime)
	require.False(t, conf.OrderTime.IsZero())

	require.Empty(t, carts.Cart("p"))
	require.Empty(t, carts.PickupTime("p"))

	require.Equal(t, 1, api.calls)
	require.Equal(t, int64(155), api.lastSub.Amount)
	require.Equal(t, domain.OrderStatePending, api.lastSub.State)
	require.Equal(t, "12:30", api.lastSub.PickupTime)
	require.Len(t, api.lastSub.Details, 2)
	require.Equal(t, 120.0, api.lastSub.Details[0].Subtotal)
}

func TestSubmitNormalizesDraft(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("p", domain.CartItem{ID: "P1", Price: 60, Quantity: 1})

	api := &fakeAPI{orderID: "A1"}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	draft := domain.OrderDraft{Name: "王小明", Mobile: "0912-345-678", Carrier: "ab12345678901234"}
	_, err := sub.Submit(context.Background(), "p", draft)
	require.NoError(t, err)
	require.Equal(t, "0912345678", api.lastSub.Mobile)
	require.Equal(t, "/AB12345678901234", api.lastSub.Carrier)
}

func TestSubmitEmptyCart(t *testing.T) {
	api := &fakeAPI{}
	sub := NewSubmitter(newTestStore(t), api, testLogger(), nil)

	_, err := sub.Submit(context.Background(), "p", validDraft())
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Zero(t, api.calls)
}

func TestSubmitInvalidMobileNeverHitsBackend(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("p", domain.CartItem{ID: "P1", Price: 60, Quantity: 1})

	api := &fakeAPI{}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	draft := validDraft()
	draft.Mobile = "0912"
	_, err := sub.Submit(context.Background(), "p", draft)
	require.ErrorIs(t, err, domain.ErrInvalidMobile)
	require.Zero(t, api.calls)
	require.Len(t, carts.Cart("p"), 1)
}

func TestSubmitUpstreamFailureKeepsCart(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("p", domain.CartItem{ID: "P1", Price: 60, Quantity: 1})
	carts.SetPickupTime("p", "12:30")

	api := &fakeAPI{err: errors.New("backend down")}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	_, err := sub.Submit(context.Background(), "p", validDraft())
	require.Error(t, err)
	require.Len(t, carts.Cart("p"), 1)
	require.Equal(t, "12:30", carts.PickupTime("p"))
}

func TestSubmitInFlightGuard(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("p", domain.CartItem{ID: "P1", Price: 60, Quantity: 1})

	api := &fakeAPI{orderID: "A1", block: make(chan struct{})}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := sub.Submit(context.Background(), "p", validDraft())
		done <- err
	}()

	<-started
	// Дождаться, пока первая отправка захватит профиль.
	for {
		api.mu.Lock()
		calls := api.calls
		api.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := sub.Submit(context.Background(), "p", validDraft())
	require.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(api.block)
	require.NoError(t, <-done)
}

func TestSubmitDifferentProfilesDoNotBlockEachOther(t *testing.T) {
	carts := newTestStore(t)
	carts.Add("a", domain.CartItem{ID: "P1", Price: 60, Quantity: 1})
	carts.Add("b", domain.CartItem{ID: "P2", Price: 35, Quantity: 1})

	api := &fakeAPI{orderID: "A1"}
	sub := NewSubmitter(carts, api, testLogger(), nil)

	_, err := sub.Submit(context.Background(), "a", validDraft())
	require.NoError(t, err)
	_, err = sub.Submit(context.Background(), "b", validDraft())
	require.NoError(t, err)
	require.Equal(t, 2, api.calls)
}
