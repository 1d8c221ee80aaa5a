// Package cart реализует редьюсер корзины и хранилище состояния профилей.
package cart

import (
	"math"

	"github.com/fastorderfood/storefront/internal/domain"
)

// Add возвращает корзину с добавленной позицией. Если товар с тем же ID уже
// есть, количество его строки ЗАМЕНЯЕТСЯ количеством из item, а не суммируется:
// вызывающая сторона заранее вычисляет желаемое итоговое количество.
// Новая позиция добавляется в конец; исходный слайс не изменяется.
func Add(items []domain.CartItem, item domain.CartItem) []domain.CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	out := make([]domain.CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == item.ID {
			out[i].Quantity = item.Quantity
			return out
		}
	}
	return append(out, item)
}

// Remove возвращает корзину без позиции по индексу.
func Remove(items []domain.CartItem, index int) ([]domain.CartItem, error) {
	if index < 0 || index >= len(items) {
		return nil, domain.ErrCartIndexOutOfRange
	}
	out := make([]domain.CartItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}

// UpdateQuantity устанавливает количество позиции. Количество ≤ 0 означает
// удаление строки: позиция с неположительным количеством существовать не может.
func UpdateQuantity(items []domain.CartItem, index, quantity int) ([]domain.CartItem, error) {
	if index < 0 || index >= len(items) {
		return nil, domain.ErrCartIndexOutOfRange
	}
	if quantity <= 0 {
		return Remove(items, index)
	}

	out := make([]domain.CartItem, len(items))
	copy(out, items)
	out[index].Quantity = quantity
	return out, nil
}

// Clear возвращает пустую корзину.
func Clear(_ []domain.CartItem) []domain.CartItem {
	return []domain.CartItem{}
}

// Total возвращает сумму корзины без округления.
func Total(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// TotalQuantity возвращает суммарное количество единиц товара (бейдж корзины).
func TotalQuantity(items []domain.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Amount округляет сумму корзины до целой денежной единицы —
// именно это значение уходит в checkout-payload.
func Amount(items []domain.CartItem) int64 {
	return int64(math.Round(Total(items)))
}
