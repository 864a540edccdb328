// Package catalog holds the static, read-only product catalog and its
// supporting content (categories, FAQs, blog posts, testimonials). The
// storefront core only ever reads from it; cart and order logic borrow
// product references without mutating them.
package catalog

import (
	"slices"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sritelangana/storefront/internal/domain/review"
)

// ErrNotFound is returned when a product slug or ID is unknown.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item available for purchase.
type Product struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	CategoryID          string          `json:"category_id,omitempty"`
	Description         string          `json:"description"`
	Story               string          `json:"story,omitempty"`
	Region              string          `json:"region,omitempty"`
	Price               decimal.Decimal `json:"price"`
	Weight              string          `json:"weight"`
	Ingredients         string          `json:"ingredients,omitempty"`
	ShelfLife           string          `json:"shelf_life,omitempty"`
	StorageInstructions string          `json:"storage_instructions,omitempty"`
	ServingSuggestions  string          `json:"serving_suggestions,omitempty"`
	IsFeatured          bool            `json:"is_featured"`
	IsFestivalSpecial   bool            `json:"is_festival_special"`
	FestivalName        string          `json:"festival_name,omitempty"`
	IsAvailable         bool            `json:"is_available"`
	DisplayOrder        int             `json:"display_order"`
}

// ProductImage belongs to exactly one product. The data does not guarantee a
// single primary image per product; ImagesForProduct orders primaries first
// so consumers can simply pick the head of the slice.
type ProductImage struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	URL          string `json:"image_url"`
	AltText      string `json:"alt_text"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// Category groups products for navigation.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// FAQ is a seeded frequently-asked question.
type FAQ struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
}

// BlogPost is a seeded article.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	PublishedAt time.Time `json:"published_at"`
}

// Testimonial is a seeded customer quote shown on marketing pages.
type Testimonial struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Quote        string `json:"quote"`
	ProductID    string `json:"product_id,omitempty"`
	IsFeatured   bool   `json:"is_featured"`
}

// Store is the in-memory catalog built from seed data. All lookups are
// synchronous and never fail after construction.
type Store struct {
	products     []Product
	bySlug       map[string]*Product
	byID         map[string]*Product
	images       map[string][]ProductImage
	reviews      map[string][]review.Review
	reviewIDs    map[string]struct{}
	categories   []Category
	faqs         []FAQ
	posts        []BlogPost
	testimonials []Testimonial
}

// Seed is the raw material a Store is built from.
type Seed struct {
	Products     []Product
	Images       []ProductImage
	Reviews      []review.Review
	Categories   []Category
	FAQs         []FAQ
	BlogPosts    []BlogPost
	Testimonials []Testimonial
}

// NewStore indexes the seed data for lookup by slug, ID, and product
// reference. Products keep their seed order stable-sorted by display order.
func NewStore(seed Seed) *Store {
	s := &Store{
		products:     make([]Product, len(seed.Products)),
		bySlug:       make(map[string]*Product, len(seed.Products)),
		byID:         make(map[string]*Product, len(seed.Products)),
		images:       make(map[string][]ProductImage),
		reviews:      make(map[string][]review.Review),
		reviewIDs:    make(map[string]struct{}, len(seed.Reviews)),
		categories:   seed.Categories,
		faqs:         seed.FAQs,
		posts:        seed.BlogPosts,
		testimonials: seed.Testimonials,
	}
	copy(s.products, seed.Products)
	sortStableByOrder(s.products)

	for i := range s.products {
		p := &s.products[i]
		s.byID[p.ID] = p
		s.bySlug[p.Slug] = p
	}
	for _, img := range seed.Images {
		s.images[img.ProductID] = append(s.images[img.ProductID], img)
	}
	for id := range s.images {
		sortImages(s.images[id])
	}
	for _, r := range seed.Reviews {
		s.reviews[r.ProductID] = append(s.reviews[r.ProductID], r)
		s.reviewIDs[r.ID] = struct{}{}
	}
	return s
}

// List returns every product in display order.
func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetBySlug looks a product up by its URL slug.
func (s *Store) GetBySlug(slug string) (*Product, error) {
	p, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetByID looks a product up by its identifier.
func (s *Store) GetByID(id string) (*Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// ImagesForProduct returns the product's images, primaries first, then by
// display order. May be empty.
func (s *Store) ImagesForProduct(productID string) []ProductImage {
	imgs := s.images[productID]
	out := make([]ProductImage, len(imgs))
	copy(out, imgs)
	return out
}

// SeededReviewsForProduct returns the read-only template reviews shipped
// with the catalog for the given product.
func (s *Store) SeededReviewsForProduct(productID string) []review.Review {
	rs := s.reviews[productID]
	out := make([]review.Review, len(rs))
	copy(out, rs)
	return out
}

// HasSeededReview reports whether a seeded review with the given ID exists.
func (s *Store) HasSeededReview(reviewID string) bool {
	_, ok := s.reviewIDs[reviewID]
	return ok
}

// Categories returns all categories.
func (s *Store) Categories() []Category { return s.categories }

// FAQs returns all seeded FAQs.
func (s *Store) FAQs() []FAQ { return s.faqs }

// BlogPosts returns all seeded blog posts.
func (s *Store) BlogPosts() []BlogPost { return s.posts }

// Testimonials returns all seeded testimonials.
func (s *Store) Testimonials() []Testimonial { return s.testimonials }

func sortStableByOrder(products []Product) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return a.DisplayOrder - b.DisplayOrder
	})
}

func sortImages(imgs []ProductImage) {
	slices.SortStableFunc(imgs, func(a, b ProductImage) int {
		if a.IsPrimary != b.IsPrimary {
			if a.IsPrimary {
				return -1
			}
			return 1
		}
		return a.DisplayOrder - b.DisplayOrder
	})
}
