package cart

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/domain"
)

// Store хранит состояние корзин в памяти и зеркалирует каждое изменение в
// CartStateRepository. Состояние профиля поднимается из репозитория при первом
// обращении; повреждённые или отсутствующие данные считаются пустой корзиной.
// Записи в репозиторий выполняются по принципу fire-and-forget: ошибка записи
// логируется, но не откатывает изменение в памяти.
type Store struct {
	repo   domain.CartStateRepository
	logger *log.Entry

	mu       sync.Mutex
	profiles map[string]domain.CartState
	subs     []func(profileID string, state domain.CartState)
}

// NewStore создаёт хранилище поверх репозитория состояния.
func NewStore(repo domain.CartStateRepository, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "cart-store")
	}
	return &Store{
		repo:     repo,
		logger:   logger,
		profiles: make(map[string]domain.CartState),
	}
}

// Subscribe регистрирует наблюдателя, который вызывается после каждого
// изменения состояния профиля. Вызывается вне внутренней блокировки.
func (s *Store) Subscribe(fn func(profileID string, state domain.CartState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State возвращает копию текущего состояния профиля.
func (s *Store) State(profileID string) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.stateLocked(profileID))
}

// Cart возвращает копию позиций корзины профиля.
func (s *Store) Cart(profileID string) []domain.CartItem {
	return s.State(profileID).Items
}

// PickupTime возвращает выбранное время самовывоза профиля.
func (s *Store) PickupTime(profileID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(profileID).PickupTime
}

// OpenCarts возвращает число профилей с непустой корзиной.
func (s *Store) OpenCarts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, st := range s.profiles {
		if !st.Empty() {
			n++
		}
	}
	return n
}

// Add добавляет позицию в корзину профиля (семантика замены количества,
// см. Add редьюсера) и возвращает новое состояние.
func (s *Store) Add(profileID string, item domain.CartItem) domain.CartState {
	s.mu.Lock()
	st := s.stateLocked(profileID)
	st.Items = Add(st.Items, item)
	s.profiles[profileID] = st
	s.persistCartLocked(profileID, st.Items)
	out := copyState(st)
	s.mu.Unlock()

	s.notify(profileID, out)
	return out
}

// Remove удаляет позицию по индексу и возвращает новое состояние.
func (s *Store) Remove(profileID string, index int) (domain.CartState, error) {
	s.mu.Lock()
	st := s.stateLocked(profileID)
	items, err := Remove(st.Items, index)
	if err != nil {
		s.mu.Unlock()
		return domain.CartState{}, err
	}
	st.Items = items
	s.profiles[profileID] = st
	s.persistCartLocked(profileID, st.Items)
	out := copyState(st)
	s.mu.Unlock()

	s.notify(profileID, out)
	return out, nil
}

// UpdateQuantity устанавливает количество позиции; количество ≤ 0 удаляет её.
func (s *Store) UpdateQuantity(profileID string, index, quantity int) (domain.CartState, error) {
	s.mu.Lock()
	st := s.stateLocked(profileID)
	items, err := UpdateQuantity(st.Items, index, quantity)
	if err != nil {
		s.mu.Unlock()
		return domain.CartState{}, err
	}
	st.Items = items
	s.profiles[profileID] = st
	s.persistCartLocked(profileID, st.Items)
	out := copyState(st)
	s.mu.Unlock()

	s.notify(profileID, out)
	return out, nil
}

// SetPickupTime сохраняет выбранный слот самовывоза.
func (s *Store) SetPickupTime(profileID, pickupTime string) {
	s.mu.Lock()
	st := s.stateLocked(profileID)
	st.PickupTime = pickupTime
	s.profiles[profileID] = st
	if err := s.repo.SavePickupTime(profileID, pickupTime); err != nil {
		s.logger.WithError(err).WithField("profile_id", profileID).Warn("failed to persist pickup time")
	}
	out := copyState(st)
	s.mu.Unlock()

	s.notify(profileID, out)
}

// Clear опустошает корзину и сбрасывает время самовывоза. Корзина сохраняется
// пустой, а сохранённое время удаляется из репозитория.
func (s *Store) Clear(profileID string) {
	s.mu.Lock()
	st := domain.CartState{Items: Clear(nil)}
	s.profiles[profileID] = st
	s.persistCartLocked(profileID, st.Items)
	if err := s.repo.ClearPickupTime(profileID); err != nil {
		s.logger.WithError(err).WithField("profile_id", profileID).Warn("failed to clear pickup time")
	}
	out := copyState(st)
	s.mu.Unlock()

	s.notify(profileID, out)
}

// stateLocked поднимает состояние профиля из репозитория при первом обращении.
func (s *Store) stateLocked(profileID string) domain.CartState {
	if st, ok := s.profiles[profileID]; ok {
		return st
	}

	st, err := s.repo.Load(profileID)
	if err != nil {
		// Сломанное хранилище деградирует до пустой корзины, не до ошибки.
		s.logger.WithError(err).WithField("profile_id", profileID).Warn("failed to load cart state, starting empty")
		st = domain.CartState{}
	}
	s.profiles[profileID] = st
	return st
}

func (s *Store) persistCartLocked(profileID string, items []domain.CartItem) {
	if err := s.repo.SaveCart(profileID, items); err != nil {
		s.logger.WithError(err).WithField("profile_id", profileID).Warn("failed to persist cart")
	}
}

func (s *Store) notify(profileID string, state domain.CartState) {
	s.mu.Lock()
	subs := make([]func(string, domain.CartState), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(profileID, copyState(state))
	}
}

func copyState(st domain.CartState) domain.CartState {
	items := make([]domain.CartItem, len(st.Items))
	copy(items, st.Items)
	return domain.CartState{Items: items, PickupTime: st.PickupTime}
}
