package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fastorderfood/storefront/internal/domain"
	"github.com/fastorderfood/storefront/internal/pickup"
)

type storeInfoView struct {
	StoreID         string `json:"storeId"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	ContactTel      string `json:"contactTel"`
	BusinessHours   string `json:"businessHours"`
	BackgroundImage string `json:"backgroundImage"`
}

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image"`
	Enabled  bool    `json:"enabled"`
}

type menuView struct {
	Categories []categoryView `json:"categories"`
	Products   []productView  `json:"products"`
}

type cartLineView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Subtotal float64 `json:"subtotal"`
}

type cartView struct {
	Items      []cartLineView `json:"items"`
	Total      float64        `json:"total"`
	Quantity   int            `json:"quantity"`
	PickupTime string         `json:"pickupTime"`
}

func storeInfoToView(info domain.StoreInfo) storeInfoView {
	return storeInfoView{
		StoreID:         info.StoreID,
		Name:            info.Name,
		Address:         info.Address,
		ContactTel:      info.ContactTel,
		BusinessHours:   info.BusinessHours,
		BackgroundImage: info.BackgroundImage,
	}
}

func (s *Server) handleStoreInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.backend.StoreInfo(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, storeInfoToView(info))
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.catalog.Load(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	view := menuView{
		Categories: make([]categoryView, 0, len(menu.Categories)),
		Products:   make([]productView, 0, len(menu.Products)),
	}
	for _, c := range menu.Categories {
		view.Categories = append(view.Categories, categoryView{ID: c.ID, Name: c.Name})
	}
	for _, p := range menu.Products {
		view.Products = append(view.Products, productView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Unit:     p.Unit,
			Image:    p.Image,
			Enabled:  p.Enabled,
		})
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) cartViewOf(profile string) cartView {
	state := s.carts.State(profile)
	view := cartView{
		Items:      make([]cartLineView, 0, len(state.Items)),
		PickupTime: state.PickupTime,
	}
	var total float64
	for _, it := range state.Items {
		view.Items = append(view.Items, cartLineView{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Subtotal: it.Subtotal(),
		})
		total += it.Subtotal()
		view.Quantity += it.Quantity
	}
	view.Total = total
	return view
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.cartViewOf(profileID(r)))
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	if body.ID == "" {
		s.respondError(w, http.StatusBadRequest, "item id is required")
		return
	}

	profile := profileID(r)
	item := domain.CartItem{
		ID:       body.ID,
		Name:     body.Name,
		Price:    body.Price,
		Quantity: body.Quantity,
		Unit:     body.Unit,
	}
	s.carts.Add(profile, item)
	s.respondJSON(w, http.StatusOK, s.cartViewOf(profile))
}

func (s *Server) cartIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "cart index must be an integer")
		return 0, false
	}
	return index, true
}

func (s *Server) handleCartUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	index, ok := s.cartIndex(w, r)
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	profile := profileID(r)
	if _, err := s.carts.UpdateQuantity(profile, index, body.Quantity); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.cartViewOf(profile))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	index, ok := s.cartIndex(w, r)
	if !ok {
		return
	}
	profile := profileID(r)
	if _, err := s.carts.Remove(profile, index); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.cartViewOf(profile))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	profile := profileID(r)
	s.carts.Clear(profile)
	s.respondJSON(w, http.StatusOK, s.cartViewOf(profile))
}

func (s *Server) handlePickupTimeGet(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"pickupTime": s.carts.PickupTime(profileID(r)),
	})
}

func (s *Server) handlePickupTimeSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PickupTime string `json:"pickupTime"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	if !pickup.Valid(s.now(), body.PickupTime) {
		s.respondError(w, http.StatusUnprocessableEntity, "pickup time is not an available slot")
		return
	}

	s.carts.SetPickupTime(profileID(r), body.PickupTime)
	s.respondJSON(w, http.StatusOK, map[string]string{"pickupTime": body.PickupTime})
}

func (s *Server) handlePickupSlots(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{
		"slots": pickup.Slots(s.now()),
	})
}

func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Mobile  string `json:"mobile"`
		Carrier string `json:"carrier"`
		Note    string `json:"note"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	draft := domain.OrderDraft{
		Name:    body.Name,
		Mobile:  body.Mobile,
		Carrier: body.Carrier,
		Note:    body.Note,
	}
	conf, err := s.submitter.Submit(r.Context(), profileID(r), draft)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"orderNumber": conf.OrderNumber,
		"orderTime":   conf.OrderTime.Format(time.RFC3339),
		"pickupTime":  conf.PickupTime,
	})
}
