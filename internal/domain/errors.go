package domain

import "errors"

var (
	// ErrInvalidMobile — номер телефона не прошёл проверку перед отправкой заказа.
	ErrInvalidMobile = errors.New("mobile must be 10 digits starting with 09")
	// ErrInvalidCarrier — код носителя э-инвойса не совпал ни с одной допустимой формой.
	ErrInvalidCarrier = errors.New("carrier code has invalid format")
	// ErrEmptyCart — оформление заказа с пустой корзиной запрещено.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartIndexOutOfRange — позиционный индекс за пределами корзины.
	ErrCartIndexOutOfRange = errors.New("cart index out of range")
	// ErrSubmissionInFlight — по этому профилю уже идёт отправка заказа.
	ErrSubmissionInFlight = errors.New("order submission already in flight")
	// ErrBadCredentials — неверная пара логин/пароль админки.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrSessionNotFound — админ-сессия не найдена или уже завершена.
	ErrSessionNotFound = errors.New("session not found")
	// ErrStoreInfoEmpty — бэкенд вернул пустой список данных магазина.
	ErrStoreInfoEmpty = errors.New("store info is empty")
)
