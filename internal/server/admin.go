package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fastorderfood/storefront/internal/domain"
)

// Токен сессии администратора передаётся в этом заголовке.
const adminTokenHeader = "X-Admin-Token"

// authenticated пропускает запрос только с валидным токеном сессии.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.admin.Authenticate(r.Header.Get(adminTokenHeader)); err != nil {
			s.respondError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	session, err := s.admin.Login(body.Username, body.Password)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"token": session.Token})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.Logout(r.Header.Get(adminTokenHeader)); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleAdminStoreGet(w http.ResponseWriter, r *http.Request) {
	info, err := s.backend.StoreInfo(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, storeInfoToView(info))
}

func (s *Server) handleAdminStoreUpdate(w http.ResponseWriter, r *http.Request) {
	var body storeInfoView
	if !s.decodeBody(w, r, &body) {
		return
	}

	info := domain.StoreInfo{
		StoreID:         body.StoreID,
		Name:            body.Name,
		Address:         body.Address,
		ContactTel:      body.ContactTel,
		BusinessHours:   body.BusinessHours,
		BackgroundImage: body.BackgroundImage,
	}
	if err := s.backend.UpdateStoreInfo(r.Context(), info); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, body)
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.backend.AllProducts(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Unit:     p.Unit,
			Image:    p.Image,
			Enabled:  p.Enabled,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string][]productView{"products": views})
}

func (s *Server) handleAdminProductStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	if err := s.backend.SetProductEnabled(r.Context(), r.PathValue("id"), body.Enabled); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"id":      r.PathValue("id"),
		"enabled": body.Enabled,
	})
}

type orderView struct {
	ID         int    `json:"id"`
	OrderID    string `json:"orderID"`
	DateTime   string `json:"dateTime"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	PickupTime string `json:"pickupTime"`
	Amount     int64  `json:"amount"`
	State      string `json:"state"`
}

// handleAdminOrders возвращает заказы за период, по умолчанию за последнюю
// неделю.
func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := s.now()
	query := domain.OrdersQuery{
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   now,
		State:     domain.OrderState(q.Get("state")),
		OrderID:   q.Get("orderID"),
	}
	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		query.StartDate = t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		// конец дня включительно
		query.EndDate = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	if query.State != "" && !domain.KnownOrderState(query.State) {
		s.respondError(w, http.StatusBadRequest, "unknown order state")
		return
	}

	orders, err := s.backend.Orders(r.Context(), query)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{
			ID:         o.ID,
			OrderID:    o.OrderID,
			DateTime:   o.DateTime,
			Name:       o.Name,
			Mobile:     o.Mobile,
			PickupTime: o.PickupTime,
			Amount:     o.Amount,
			State:      string(o.State),
		})
	}
	s.respondJSON(w, http.StatusOK, map[string][]orderView{"orders": views})
}

func (s *Server) orderPathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "order id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleAdminOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderPathID(w, r)
	if !ok {
		return
	}
	rows, err := s.backend.OrderDetails(r.Context(), id)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	type rowView struct {
		ID       int     `json:"id"`
		ProdID   string  `json:"prodId"`
		ProdName string  `json:"prodName"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
		Note     string  `json:"note"`
	}
	views := make([]rowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, rowView{
			ID:       row.ID,
			ProdID:   row.ProdID,
			ProdName: row.ProdName,
			Quantity: row.Quantity,
			Subtotal: row.Subtotal,
			Note:     row.Note,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"details": views})
}

func (s *Server) handleAdminOrderState(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderPathID(w, r)
	if !ok {
		return
	}
	var body struct {
		State string `json:"state"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	state := domain.OrderState(body.State)
	if !domain.KnownOrderState(state) {
		s.respondError(w, http.StatusBadRequest, "unknown order state")
		return
	}

	if err := s.backend.UpdateOrderState(r.Context(), id, state); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"id": id, "state": body.State})
}
