package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sritelangana/storefront/internal/domain/catalog"
)

// wishlistView lists the saved products in insertion order.
type wishlistView struct {
	Products []catalog.Product `json:"products"`
}

// GetWishlist handles GET /api/wishlist.
func (h *Handler) GetWishlist(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.wishlistView())
}

// AddWishlistItem handles PUT /api/wishlist/{productID}. Saving an
// already-saved product is a no-op, so the endpoint is idempotent.
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(mux.Vars(r)["productID"])
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	h.wishlists.Add(*p)
	respondJSON(w, http.StatusOK, h.wishlistView())
}

// RemoveWishlistItem handles DELETE /api/wishlist/{productID}.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.wishlists.Remove(mux.Vars(r)["productID"])
	respondJSON(w, http.StatusOK, h.wishlistView())
}

func (h *Handler) wishlistView() wishlistView {
	products := h.wishlists.Products()
	if products == nil {
		products = []catalog.Product{}
	}
	return wishlistView{Products: products}
}
