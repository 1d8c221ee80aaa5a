package memory

import (
	"sync"

	"github.com/fastorderfood/storefront/internal/domain"
)

// cartStateRepositoryInMemory — простая in-memory реализация CartStateRepository.
type cartStateRepositoryInMemory struct {
	mu     sync.RWMutex
	states map[string]domain.CartState
}

// NewCartStateRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewCartStateRepository() domain.CartStateRepository {
	return &cartStateRepositoryInMemory{
		states: make(map[string]domain.CartState),
	}
}

// Load возвращает последнее сохранённое состояние профиля.
// Отсутствующий профиль — это пустое состояние, не ошибка.
func (r *cartStateRepositoryInMemory) Load(profileID string) (domain.CartState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyState(r.states[profileID]), nil
}

// SaveCart перезаписывает сохранённую корзину профиля целиком.
func (r *cartStateRepositoryInMemory) SaveCart(profileID string, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.states[profileID]
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	st.Items = make([]domain.CartItem, len(items))
	copy(st.Items, items)
	r.states[profileID] = st
	return nil
}

// SavePickupTime перезаписывает время самовывоза профиля.
func (r *cartStateRepositoryInMemory) SavePickupTime(profileID, pickupTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.states[profileID]
	st.PickupTime = pickupTime
	r.states[profileID] = st
	return nil
}

// ClearPickupTime удаляет сохранённое время самовывоза.
func (r *cartStateRepositoryInMemory) ClearPickupTime(profileID string) error {
	return r.SavePickupTime(profileID, "")
}

func copyState(st domain.CartState) domain.CartState {
	items := make([]domain.CartItem, len(st.Items))
	copy(items, st.Items)
	return domain.CartState{Items: items, PickupTime: st.PickupTime}
}

var _ domain.CartStateRepository = (*cartStateRepositoryInMemory)(nil)
