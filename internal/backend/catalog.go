package backend

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fastorderfood/storefront/internal/domain"
)

type categoryDTO struct {
	ID   string `json:"prodClass3Id"`
	Name string `json:"prodClass3Name"`
}

// productDTO повторяет проводную форму бэкенда, включая опечатку
// в поле isEnlable — она закреплена контрактом.
type productDTO struct {
	ID         string  `json:"prodId"`
	Name       string  `json:"prodName"`
	Price      float64 `json:"priceStd"`
	CategoryID string  `json:"prodClass3Id"`
	Unit       string  `json:"stdUnit"`
	Image      string  `json:"prodImage"`
	Enabled    bool    `json:"isEnlable"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:       d.ID,
		Name:     d.Name,
		Price:    d.Price,
		Category: d.CategoryID,
		Unit:     d.Unit,
		Image:    d.Image,
		Enabled:  d.Enabled,
	}
}

// Categories возвращает список категорий меню.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var dtos []categoryDTO
	if err := c.doJSON(ctx, "categories", http.MethodGet, "/Prod/GetProdClass", nil, &dtos); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, domain.Category{ID: d.ID, Name: d.Name})
	}
	return categories, nil
}

// ProductsByCategory возвращает товары категории. Бэкенд отвечает 404
// на категорию без товаров — это пустой список, не ошибка.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var dtos []productDTO
	err := c.doJSON(ctx, "products-by-category", http.MethodGet, "/Prod/GetProductsByClass/"+categoryID, nil, &dtos)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// AllProducts возвращает полный список товаров, включая отключённые.
// Административная операция, требует API-ключ.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	payload := struct {
		APIKey string `json:"apiKey"`
	}{APIKey: c.apiKey}

	var dtos []productDTO
	if err := c.doJSON(ctx, "all-products", http.MethodPost, "/Prod/GetAllProducts", payload, &dtos); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// SetProductEnabled включает или выключает товар на витрине.
func (c *Client) SetProductEnabled(ctx context.Context, productID string, enabled bool) error {
	path := "/Prod/UpdateProductStatus?prodId=" + productID + "&isEnabled=" + strconv.FormatBool(enabled)
	return c.doJSON(ctx, "update-product-status", http.MethodPut, path, nil, nil)
}
