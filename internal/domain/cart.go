package domain

// CartItem — одна позиция корзины с выбранным количеством.
type CartItem struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
	Unit     string
}

// Subtotal возвращает сумму строки (цена × количество).
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartState — снимок состояния профиля: позиции корзины и выбранное
// время самовывоза. Ровно то, что зеркалируется в долговременное хранилище.
type CartState struct {
	Items      []CartItem
	PickupTime string
}

// Empty сообщает, пуста ли корзина. Пустая корзина блокирует оформление заказа.
func (s CartState) Empty() bool {
	return len(s.Items) == 0
}
