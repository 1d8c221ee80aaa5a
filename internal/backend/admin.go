package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/fastorderfood/storefront/internal/domain"
)

type orderDTO struct {
	ID         int    `json:"id"`
	OrderID    string `json:"orderID"`
	DateTime   string `json:"dateTime"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	PickupTime string `json:"pickupTime"`
	Amount     int64  `json:"amt"`
	State      string `json:"state"`
}

type orderDetailRowDTO struct {
	ID       int     `json:"id"`
	ProdID   string  `json:"prodId"`
	ProdName string  `json:"prodName"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
	Note     string  `json:"note"`
}

// Orders возвращает заказы по фильтру. Даты сериализуются в RFC3339,
// границы дня выставляет вызывающая сторона.
func (c *Client) Orders(ctx context.Context, q domain.OrdersQuery) ([]domain.Order, error) {
	payload := struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		State     string `json:"state"`
		OrderID   string `json:"orderID"`
		APIKey    string `json:"apiKey"`
	}{
		StartDate: q.StartDate.Format(time.RFC3339),
		EndDate:   q.EndDate.Format(time.RFC3339),
		State:     string(q.State),
		OrderID:   q.OrderID,
		APIKey:    c.apiKey,
	}

	var dtos []orderDTO
	if err := c.doJSON(ctx, "orders", http.MethodPost, "/Order/GetOrders", payload, &dtos); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, domain.Order{
			ID:         d.ID,
			OrderID:    d.OrderID,
			DateTime:   d.DateTime,
			Name:       d.Name,
			Mobile:     d.Mobile,
			PickupTime: d.PickupTime,
			Amount:     d.Amount,
			State:      domain.OrderState(d.State),
		})
	}
	return orders, nil
}

// OrderDetails возвращает позиции заказа по его внутреннему id.
func (c *Client) OrderDetails(ctx context.Context, orderID int) ([]domain.OrderDetailRow, error) {
	// Поле называется Id с большой буквы — так его ждёт бэкенд.
	payload := struct {
		ID     int    `json:"Id"`
		APIKey string `json:"apiKey"`
	}{ID: orderID, APIKey: c.apiKey}

	var dtos []orderDetailRowDTO
	if err := c.doJSON(ctx, "order-details", http.MethodPost, "/Order/GetOrderDetails", payload, &dtos); err != nil {
		return nil, err
	}
	rows := make([]domain.OrderDetailRow, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, domain.OrderDetailRow{
			ID:       d.ID,
			ProdID:   d.ProdID,
			ProdName: d.ProdName,
			Quantity: d.Quantity,
			Subtotal: d.Subtotal,
			Note:     d.Note,
		})
	}
	return rows, nil
}

// UpdateOrderState переводит заказ в новое состояние.
func (c *Client) UpdateOrderState(ctx context.Context, orderID int, state domain.OrderState) error {
	payload := struct {
		ID     int    `json:"id"`
		State  string `json:"state"`
		APIKey string `json:"apiKey"`
	}{ID: orderID, State: string(state), APIKey: c.apiKey}

	return c.doJSON(ctx, "update-order-state", http.MethodPut, "/Order/UpdateOrderState", payload, nil)
}
