package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sritelangana/storefront/internal/domain/review"
)

// reviewListView is the product review page payload: the merged review list
// plus its aggregate summary.
type reviewListView struct {
	Reviews []review.Review `json:"reviews"`
	Summary review.Summary  `json:"summary"`
}

type submitReviewRequest struct {
	Rating        int    `json:"rating"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// ListReviews handles GET /api/products/{slug}/reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListForProduct(p.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	respondJSON(w, http.StatusOK, reviewListView{
		Reviews: reviews,
		Summary: review.Summarize(reviews),
	})
}

// SubmitReview handles POST /api/products/{slug}/reviews.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req submitReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stored, err := h.reviews.Submit(review.SubmitRequest{
		ProductID:     p.ID,
		Rating:        req.Rating,
		Title:         req.Title,
		Body:          req.Body,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}

// MarkReviewHelpful handles POST /api/reviews/{id}/helpful.
func (h *Handler) MarkReviewHelpful(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.MarkHelpful(mux.Vars(r)["id"]); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
