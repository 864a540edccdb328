package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sritelangana/storefront/internal/domain/order"
)

type placeOrderRequest struct {
	Customer        order.CustomerInfo    `json:"customer"`
	ShippingAddress order.ShippingAddress `json:"shipping_address"`
}

// PlaceOrder handles POST /api/orders. The order consumes the current cart;
// on success the cart is empty and the created order is returned.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.Place(req.ShippingAddress, req.Customer)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

// ListOrders handles GET /api/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{number}, the confirmation page lookup.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByNumber(mux.Vars(r)["number"])
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
