// Package handler exposes the storefront core over JSON HTTP. It is a thin
// delivery layer: every endpoint maps 1:1 onto a domain service operation and
// the domain's errors decide the response status.
package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sritelangana/storefront/internal/domain/cart"
	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/domain/giftbox"
	"github.com/sritelangana/storefront/internal/domain/newsletter"
	"github.com/sritelangana/storefront/internal/domain/order"
	"github.com/sritelangana/storefront/internal/domain/review"
	"github.com/sritelangana/storefront/internal/domain/wishlist"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored in the seed data.
	ImageBaseURL string
}

// Handler wires the domain services into HTTP endpoints.
type Handler struct {
	catalog    *catalog.Store
	carts      *cart.Service
	wishlists  *wishlist.Service
	orders     *order.Service
	reviews    *review.Service
	newsletter *newsletter.Service
	giftboxes  *giftbox.Service

	imageBaseURL string
}

// New constructs a Handler with the required domain dependencies.
func New(
	cfg Config,
	cat *catalog.Store,
	carts *cart.Service,
	wishlists *wishlist.Service,
	orders *order.Service,
	reviews *review.Service,
	news *newsletter.Service,
	boxes *giftbox.Service,
) *Handler {
	return &Handler{
		catalog:      cat,
		carts:        carts,
		wishlists:    wishlists,
		orders:       orders,
		reviews:      reviews,
		newsletter:   news,
		giftboxes:    boxes,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes registers every endpoint on a fresh router.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", h.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}/reviews", h.ListReviews).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}/reviews", h.SubmitReview).Methods(http.MethodPost)
	api.HandleFunc("/reviews/{id}/helpful", h.MarkReviewHelpful).Methods(http.MethodPost)

	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/faqs", h.ListFAQs).Methods(http.MethodGet)
	api.HandleFunc("/blog", h.ListBlogPosts).Methods(http.MethodGet)
	api.HandleFunc("/testimonials", h.ListTestimonials).Methods(http.MethodGet)

	api.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", h.AddCartItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productID}", h.UpdateCartItem).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{productID}", h.RemoveCartItem).Methods(http.MethodDelete)

	api.HandleFunc("/wishlist", h.GetWishlist).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/{productID}", h.AddWishlistItem).Methods(http.MethodPut)
	api.HandleFunc("/wishlist/{productID}", h.RemoveWishlistItem).Methods(http.MethodDelete)

	api.HandleFunc("/orders", h.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{number}", h.GetOrder).Methods(http.MethodGet)

	api.HandleFunc("/newsletter/subscriptions", h.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/gift-boxes", h.ComposeGiftBox).Methods(http.MethodPost)
	api.HandleFunc("/gift-boxes", h.ListGiftBoxes).Methods(http.MethodGet)

	return r
}
