package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/sritelangana/storefront/internal/domain/cart"
	"github.com/sritelangana/storefront/internal/domain/catalog"
)

// cartView is the full cart state: entries in insertion order plus the badge
// count and the running subtotal.
type cartView struct {
	Entries  []cart.Entry    `json:"entries"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	ImageID   string `json:"image_id,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.cartView())
}

// AddCartItem handles POST /api/cart/items. The product is resolved from the
// catalog so the cart stores a full product reference, and the optional
// image_id picks one of the product's images as the entry's thumbnail.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var image *catalog.ProductImage
	if req.ImageID != "" {
		for _, img := range h.catalog.ImagesForProduct(p.ID) {
			if img.ID == req.ImageID {
				image = &img
				break
			}
		}
	}

	if err := h.carts.Add(*p, req.Quantity, image); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}

// UpdateCartItem handles PUT /api/cart/items/{productID}. A quantity of zero
// or below removes the entry.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.carts.SetQuantity(mux.Vars(r)["productID"], req.Quantity)
	respondJSON(w, http.StatusOK, h.cartView())
}

// RemoveCartItem handles DELETE /api/cart/items/{productID}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.carts.Remove(mux.Vars(r)["productID"])
	respondJSON(w, http.StatusOK, h.cartView())
}

// ClearCart handles DELETE /api/cart.
func (h *Handler) ClearCart(w http.ResponseWriter, _ *http.Request) {
	h.carts.Clear()
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) cartView() cartView {
	entries := h.carts.Entries()
	if entries == nil {
		entries = []cart.Entry{}
	}
	return cartView{
		Entries:  entries,
		Count:    h.carts.Count(),
		Subtotal: h.carts.Subtotal().Round(2),
	}
}
