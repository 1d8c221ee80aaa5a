// Package server реализует JSON HTTP API витрины и консоли администратора.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fastorderfood/storefront/internal/admin"
	"github.com/fastorderfood/storefront/internal/backend"
	"github.com/fastorderfood/storefront/internal/cart"
	"github.com/fastorderfood/storefront/internal/catalog"
	"github.com/fastorderfood/storefront/internal/checkout"
	"github.com/fastorderfood/storefront/internal/domain"
)

// Базовый путь, под которым живут все маршруты витрины.
const basePath = "/FastOrderFood"

// CatalogLoader загружает меню.
type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Menu, error)
}

// OrderSubmitter оформляет заказ профиля.
type OrderSubmitter interface {
	Submit(ctx context.Context, profileID string, draft domain.OrderDraft) (checkout.Confirmation, error)
}

// BackendAPI — операции ресторанного API, проксируемые напрямую.
type BackendAPI interface {
	StoreInfo(ctx context.Context) (domain.StoreInfo, error)
	UpdateStoreInfo(ctx context.Context, info domain.StoreInfo) error
	AllProducts(ctx context.Context) ([]domain.Product, error)
	SetProductEnabled(ctx context.Context, productID string, enabled bool) error
	Orders(ctx context.Context, q domain.OrdersQuery) ([]domain.Order, error)
	OrderDetails(ctx context.Context, orderID int) ([]domain.OrderDetailRow, error)
	UpdateOrderState(ctx context.Context, orderID int, state domain.OrderState) error
}

// Server связывает HTTP-маршруты с сервисами витрины.
type Server struct {
	carts     *cart.Store
	catalog   CatalogLoader
	submitter OrderSubmitter
	backend   BackendAPI
	admin     *admin.Service
	logger    *log.Entry
	now       func() time.Time
}

// New создаёт Server.
func New(carts *cart.Store, cat CatalogLoader, submitter OrderSubmitter, api BackendAPI, adm *admin.Service, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "http-server")
	}
	return &Server{
		carts:     carts,
		catalog:   cat,
		submitter: submitter,
		backend:   api,
		admin:     adm,
		logger:    logger,
		now:       time.Now,
	}
}

// Handler возвращает маршрутизатор витрины.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+basePath+"/{$}", s.handleStoreInfo)
	mux.HandleFunc("GET "+basePath+"/Menu", s.handleMenu)

	mux.HandleFunc("GET "+basePath+"/Cart", s.handleCartView)
	mux.HandleFunc("DELETE "+basePath+"/Cart", s.handleCartClear)
	mux.HandleFunc("POST "+basePath+"/Cart/Items", s.handleCartAdd)
	mux.HandleFunc("PUT "+basePath+"/Cart/Items/{index}", s.handleCartUpdateQuantity)
	mux.HandleFunc("DELETE "+basePath+"/Cart/Items/{index}", s.handleCartRemove)
	mux.HandleFunc("GET "+basePath+"/Cart/PickupTime", s.handlePickupTimeGet)
	mux.HandleFunc("PUT "+basePath+"/Cart/PickupTime", s.handlePickupTimeSet)
	mux.HandleFunc("GET "+basePath+"/PickupSlots", s.handlePickupSlots)

	mux.HandleFunc("POST "+basePath+"/ConfirmOrder", s.handleConfirmOrder)

	mux.HandleFunc("POST "+basePath+"/Admin/Login", s.handleAdminLogin)
	mux.HandleFunc("POST "+basePath+"/Admin/Logout", s.handleAdminLogout)
	mux.HandleFunc("GET "+basePath+"/Admin/Main/Store", s.authenticated(s.handleAdminStoreGet))
	mux.HandleFunc("PUT "+basePath+"/Admin/Main/Store", s.authenticated(s.handleAdminStoreUpdate))
	mux.HandleFunc("GET "+basePath+"/Admin/Main/Products", s.authenticated(s.handleAdminProducts))
	mux.HandleFunc("PUT "+basePath+"/Admin/Main/Products/{id}/Status", s.authenticated(s.handleAdminProductStatus))
	mux.HandleFunc("GET "+basePath+"/Admin/Main/Orders", s.authenticated(s.handleAdminOrders))
	mux.HandleFunc("GET "+basePath+"/Admin/Main/Orders/{id}/Details", s.authenticated(s.handleAdminOrderDetails))
	mux.HandleFunc("PUT "+basePath+"/Admin/Main/Orders/{id}/State", s.authenticated(s.handleAdminOrderState))

	return mux
}

// profileID извлекает идентификатор профиля браузера из заголовка
// X-Profile-ID или параметра profile; без него работает профиль default.
func profileID(r *http.Request) string {
	if id := r.Header.Get("X-Profile-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("profile"); id != "" {
		return id
	}
	return "default"
}

type errorDocument struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, msg string) {
	s.respondJSON(w, code, errorDocument{Error: msg})
}

// respondDomainError переводит доменные ошибки в HTTP-коды.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCartIndexOutOfRange):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidMobile),
		errors.Is(err, domain.ErrInvalidCarrier):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrSubmissionInFlight):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrSessionNotFound):
		s.respondError(w, http.StatusUnauthorized, err.Error())
	default:
		s.logger.WithError(err).Error("upstream request failed")
		s.respondError(w, http.StatusBadGateway, "restaurant backend is unavailable")
	}
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

var _ BackendAPI = (*backend.Client)(nil)
