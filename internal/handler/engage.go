package handler

import (
	"net/http"

	"github.com/sritelangana/storefront/internal/domain/giftbox"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

type composeGiftBoxRequest struct {
	ProductIDs []string `json:"product_ids"`
	Message    string   `json:"message"`
}

// Subscribe handles POST /api/newsletter/subscriptions.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.newsletter.Subscribe(req.Email); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ComposeGiftBox handles POST /api/gift-boxes. The composed box's products
// land in the cart; the response carries the persisted composition record.
func (h *Handler) ComposeGiftBox(w http.ResponseWriter, r *http.Request) {
	var req composeGiftBoxRequest
	if !decodeBody(w, r, &req) {
		return
	}

	box, err := h.giftboxes.Compose(req.ProductIDs, req.Message)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, box)
}

// ListGiftBoxes handles GET /api/gift-boxes.
func (h *Handler) ListGiftBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.giftboxes.List()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if boxes == nil {
		boxes = []giftbox.Box{}
	}
	respondJSON(w, http.StatusOK, boxes)
}
