package domain

import "time"

// CartStateRepository — долговременное зеркало корзины и времени самовывоза,
// по одному состоянию на профиль браузера. Источник истины при старте сессии.
type CartStateRepository interface {
	// Load возвращает последнее сохранённое состояние профиля.
	// Отсутствующие или повреждённые данные считаются пустым состоянием
	// и никогда не поднимаются к вызывающей стороне как ошибка разбора.
	Load(profileID string) (CartState, error)
	// SaveCart перезаписывает сохранённую корзину целиком; инкрементальных
	// записей и версионирования нет.
	SaveCart(profileID string, items []CartItem) error
	// SavePickupTime перезаписывает сохранённое время самовывоза.
	SavePickupTime(profileID, pickupTime string) error
	// ClearPickupTime удаляет сохранённое время самовывоза. Корзина при
	// очистке сохраняется пустой, а не удаляется.
	ClearPickupTime(profileID string) error
}

// Session — авторизованная сессия админ-консоли.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}

// SessionRepository хранит активные админ-сессии.
type SessionRepository interface {
	Create(s Session) error
	// Get возвращает сессию или ErrSessionNotFound.
	Get(token string) (Session, error)
	Delete(token string) error
}
