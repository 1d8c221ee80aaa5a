package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fastorderfood/storefront/internal/domain"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger.WithField("component", "backend-test")
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", testLogger())
}

func TestCategories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/Prod/GetProdClass", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"prodClass3Id":"C1","prodClass3Name":"主食"},
			{"prodClass3Id":"C2","prodClass3Name":"飲料"}
		]`)
	}))

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, domain.Category{ID: "C1", Name: "主食"}, categories[0])
}

func TestProductsByCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Prod/GetProductsByClass/C1", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"prodId":"P1","prodName":"滷肉飯","priceStd":60,"prodClass3Id":"C1","stdUnit":"份","prodImage":"p1.jpg","isEnlable":true}
		]`)
	}))

	products, err := client.ProductsByCategory(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "滷肉飯", products[0].Name)
	require.Equal(t, 60.0, products[0].Price)
	require.True(t, products[0].Enabled)
}

func TestProductsByCategoryNotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no products", http.StatusNotFound)
	}))

	products, err := client.ProductsByCategory(context.Background(), "empty")
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestProductsByCategoryServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ProductsByCategory(context.Background(), "C1")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
	require.Contains(t, se.Body, "boom")
}

func TestStoreInfoTakesFirstElement(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Store/GetStoreInfo", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"storeId":"S1","storeName":"快點餐","storeAddress":"台北市","storeContactTel":"02-1234","storeBusinessHours":"10:00-21:00","backgroundImage":"bg.jpg"},
			{"storeId":"S2","storeName":"ignored"}
		]`)
	}))

	info, err := client.StoreInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "快點餐", info.Name)
	require.Equal(t, "10:00-21:00", info.BusinessHours)
}

func TestStoreInfoEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))

	_, err := client.StoreInfo(context.Background())
	require.True(t, errors.Is(err, domain.ErrStoreInfoEmpty))
}

func TestCheckout(t *testing.T) {
	var got checkoutRequestDTO
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/Order/Checkout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"orderId":"A123"}`)
	}))

	sub := domain.OrderSubmission{
		Amount:     155,
		Name:       "王小明",
		Mobile:     "0912345678",
		Carrier:    "/",
		PickupTime: "12:30",
		State:      domain.OrderStatePending,
		Details: []domain.OrderDetail{
			{ProdID: "P1", ProdName: "滷肉飯", Quantity: 2, Subtotal: 120},
			{ProdID: "P2", ProdName: "紅茶", Quantity: 1, Subtotal: 35},
		},
	}
	orderID, err := client.Checkout(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, "A123", orderID)

	require.Equal(t, int64(155), got.Amount)
	require.Equal(t, "0912345678", got.Mobile)
	require.Equal(t, string(domain.OrderStatePending), got.State)
	require.Len(t, got.Details, 2)
	require.Equal(t, "P1", got.Details[0].ProdID)
}

func TestOrders(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/Order/GetOrders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `[
			{"id":7,"orderID":"A123","dateTime":"2026-08-29 12:00","name":"王小明","mobile":"0912345678","pickupTime":"12:30","amt":155,"state":"待處理"}
		]`)
	}))

	start := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)
	orders, err := client.Orders(context.Background(), domain.OrdersQuery{
		StartDate: start,
		EndDate:   end,
		State:     domain.OrderStatePending,
		OrderID:   "A123",
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, domain.OrderStatePending, orders[0].State)
	require.Equal(t, int64(155), orders[0].Amount)

	require.Equal(t, "test-key", got["apiKey"])
	require.Equal(t, "A123", got["orderID"])
	require.Equal(t, start.Format(time.RFC3339), got["startDate"])
}

func TestOrderDetails(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Order/GetOrderDetails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `[
			{"id":1,"prodId":"P1","prodName":"滷肉飯","quantity":2,"subtotal":120,"note":""}
		]`)
	}))

	rows, err := client.OrderDetails(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "P1", rows[0].ProdID)

	require.Equal(t, float64(7), got["Id"])
	require.Equal(t, "test-key", got["apiKey"])
}

func TestUpdateOrderState(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/Order/UpdateOrderState", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	err := client.UpdateOrderState(context.Background(), 7, domain.OrderStateDone)
	require.NoError(t, err)
	require.Equal(t, float64(7), got["id"])
	require.Equal(t, string(domain.OrderStateDone), got["state"])
	require.Equal(t, "test-key", got["apiKey"])
}

func TestAllProducts(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/Prod/GetAllProducts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `[
			{"prodId":"P1","prodName":"滷肉飯","priceStd":60,"isEnlable":false}
		]`)
	}))

	products, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.False(t, products[0].Enabled)
	require.Equal(t, "test-key", got["apiKey"])
}

func TestSetProductEnabled(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/Prod/UpdateProductStatus", r.URL.Path)
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.SetProductEnabled(context.Background(), "P1", false))
	require.Equal(t, []string{"P1"}, gotQuery["prodId"])
	require.Equal(t, []string{"false"}, gotQuery["isEnabled"])
}

func TestUpdateStoreInfo(t *testing.T) {
	var got storeInfoDTO
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/Store/UpdateStoreInfo", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	err := client.UpdateStoreInfo(context.Background(), domain.StoreInfo{
		StoreID: "S1",
		Name:    "快點餐",
		Address: "台北市",
	})
	require.NoError(t, err)
	require.Equal(t, "S1", got.StoreID)
	require.Equal(t, "快點餐", got.Name)
}
