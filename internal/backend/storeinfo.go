package backend

import (
	"context"
	"net/http"

	"github.com/fastorderfood/storefront/internal/domain"
)

type storeInfoDTO struct {
	StoreID         string `json:"storeId"`
	Name            string `json:"storeName"`
	Address         string `json:"storeAddress"`
	ContactTel      string `json:"storeContactTel"`
	BusinessHours   string `json:"storeBusinessHours"`
	BackgroundImage string `json:"backgroundImage"`
}

// StoreInfo возвращает карточку заведения. Бэкенд отдаёт массив,
// значим только первый элемент; пустой массив — domain.ErrStoreInfoEmpty.
func (c *Client) StoreInfo(ctx context.Context) (domain.StoreInfo, error) {
	var dtos []storeInfoDTO
	if err := c.doJSON(ctx, "store-info", http.MethodGet, "/Store/GetStoreInfo", nil, &dtos); err != nil {
		return domain.StoreInfo{}, err
	}
	if len(dtos) == 0 {
		return domain.StoreInfo{}, domain.ErrStoreInfoEmpty
	}
	d := dtos[0]
	return domain.StoreInfo{
		StoreID:         d.StoreID,
		Name:            d.Name,
		Address:         d.Address,
		ContactTel:      d.ContactTel,
		BusinessHours:   d.BusinessHours,
		BackgroundImage: d.BackgroundImage,
	}, nil
}

// UpdateStoreInfo сохраняет карточку заведения.
func (c *Client) UpdateStoreInfo(ctx context.Context, info domain.StoreInfo) error {
	payload := storeInfoDTO{
		StoreID:         info.StoreID,
		Name:            info.Name,
		Address:         info.Address,
		ContactTel:      info.ContactTel,
		BusinessHours:   info.BusinessHours,
		BackgroundImage: info.BackgroundImage,
	}
	return c.doJSON(ctx, "update-store-info", http.MethodPut, "/Store/UpdateStoreInfo", payload, nil)
}
