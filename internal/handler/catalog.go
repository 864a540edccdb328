package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sritelangana/storefront/internal/domain/catalog"
)

// productView is a product together with its ordered images, the shape the
// listing and detail pages consume.
type productView struct {
	catalog.Product
	Images []catalog.ProductImage `json:"images"`
}

// ListProducts handles GET /api/products. Optional filters: ?featured=true,
// ?festival=true, ?category=<id>.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	featured := q.Get("featured") == "true"
	festival := q.Get("festival") == "true"
	category := q.Get("category")

	products := h.catalog.List()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		if featured && !p.IsFeatured {
			continue
		}
		if festival && !p.IsFestivalSpecial {
			continue
		}
		if category != "" && p.CategoryID != category {
			continue
		}
		views = append(views, h.productView(p))
	}

	respondJSON(w, http.StatusOK, views)
}

// GetProduct handles GET /api/products/{slug}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.productView(*p))
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// ListFAQs handles GET /api/faqs.
func (h *Handler) ListFAQs(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.FAQs())
}

// ListBlogPosts handles GET /api/blog.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.BlogPosts())
}

// ListTestimonials handles GET /api/testimonials.
func (h *Handler) ListTestimonials(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Testimonials())
}

func (h *Handler) productView(p catalog.Product) productView {
	images := h.catalog.ImagesForProduct(p.ID)
	for i := range images {
		images[i].URL = h.imageURL(images[i].URL)
	}
	return productView{Product: p, Images: images}
}

// imageURL rebases relative image paths onto the configured base URL.
// Absolute URLs pass through unchanged.
func (h *Handler) imageURL(path string) string {
	if h.imageBaseURL == "" || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimSuffix(h.imageBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
