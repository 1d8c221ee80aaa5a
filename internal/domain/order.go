package domain

import "time"

// OrderState — статус заказа на стороне ресторана. Строковые значения
// принадлежат API бэкенда и передаются по проводу как есть.
type OrderState string

const (
	// OrderStatePending — начальный статус каждого нового заказа.
	OrderStatePending OrderState = "待處理"
	// OrderStateInProgress — заказ взят в работу кухней.
	OrderStateInProgress OrderState = "處理中"
	// OrderStateDone — заказ выдан покупателю.
	OrderStateDone OrderState = "已完成"
	// OrderStateCanceled — заказ отменён.
	OrderStateCanceled OrderState = "已取消"
)

// KnownOrderState сообщает, входит ли значение в набор статусов бэкенда.
func KnownOrderState(s OrderState) bool {
	switch s {
	case OrderStatePending, OrderStateInProgress, OrderStateDone, OrderStateCanceled:
		return true
	}
	return false
}

// OrderDetail — строка заказа в составе checkout-payload.
type OrderDetail struct {
	ProdID   string
	ProdName string
	Quantity int
	Subtotal float64
}

// OrderSubmission — одноразовый payload оформления заказа: сумма, контактные
// поля черновика, время самовывоза и позиции корзины. Идентификатор заказу
// присваивает бэкенд, клиент своих ID не придумывает.
type OrderSubmission struct {
	Amount     int64
	Name       string
	Mobile     string
	Carrier    string
	Note       string
	PickupTime string
	State      OrderState
	Details    []OrderDetail
}

// Order — read model списка заказов в админ-консоли. DateTime оставлено
// строкой: значение принадлежит бэкенду и используется только для показа.
type Order struct {
	ID         int
	OrderID    string
	DateTime   string
	Name       string
	Mobile     string
	PickupTime string
	Amount     int64
	State      OrderState
}

// OrderDetailRow — строка детализации заказа в админ-консоли.
type OrderDetailRow struct {
	ID       int
	ProdID   string
	ProdName string
	Quantity int
	Subtotal float64
	Note     string
}

// OrdersQuery — фильтр выборки заказов за период. Пустой State означает
// «любой статус».
type OrdersQuery struct {
	StartDate time.Time
	EndDate   time.Time
	State     OrderState
	OrderID   string
}
