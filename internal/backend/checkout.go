package backend

import (
	"context"
	"net/http"

	"github.com/fastorderfood/storefront/internal/domain"
)

type checkoutDetailDTO struct {
	ProdID   string  `json:"prodId"`
	ProdName string  `json:"prodName"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type checkoutRequestDTO struct {
	Amount     int64               `json:"amt"`
	Name       string              `json:"name"`
	Mobile     string              `json:"mobile"`
	Carrier    string              `json:"carrier"`
	Note       string              `json:"note"`
	PickupTime string              `json:"pickupTime"`
	State      string              `json:"state"`
	Details    []checkoutDetailDTO `json:"details"`
}

type checkoutResponseDTO struct {
	OrderID string `json:"orderId"`
}

// Checkout отправляет заказ на бэкенд и возвращает присвоенный номер.
func (c *Client) Checkout(ctx context.Context, sub domain.OrderSubmission) (string, error) {
	details := make([]checkoutDetailDTO, 0, len(sub.Details))
	for _, d := range sub.Details {
		details = append(details, checkoutDetailDTO{
			ProdID:   d.ProdID,
			ProdName: d.ProdName,
			Quantity: d.Quantity,
			Subtotal: d.Subtotal,
		})
	}

	payload := checkoutRequestDTO{
		Amount:     sub.Amount,
		Name:       sub.Name,
		Mobile:     sub.Mobile,
		Carrier:    sub.Carrier,
		Note:       sub.Note,
		PickupTime: sub.PickupTime,
		State:      string(sub.State),
		Details:    details,
	}

	var resp checkoutResponseDTO
	if err := c.doJSON(ctx, "checkout", http.MethodPost, "/Order/Checkout", payload, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}
