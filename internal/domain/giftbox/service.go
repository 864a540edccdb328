// Package giftbox implements the build-your-own gift box flow: a customer
// picks 3 to 5 catalog products, optionally attaches a message card, and
// the box contents land in the cart as individual entries.
package giftbox

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

const storageKey = "gift_boxes"

// Box size bounds from the storefront's gift box page.
const (
	MinProducts = 3
	MaxProducts = 5
)

// Sentinel and typed errors for gift box composition.
var (
	ErrTooFewProducts   = errors.New("select at least 3 products for a gift box")
	ErrTooManyProducts  = errors.New("a gift box holds at most 5 products")
	ErrDuplicateProduct = errors.New("each product may appear in a gift box only once")
)

// UnavailableProductError indicates a selected product is unknown or not
// currently available.
type UnavailableProductError struct {
	ProductID string
}

func (e *UnavailableProductError) Error() string {
	return "product " + e.ProductID + " is not available for gift boxes"
}

// Box is a persisted gift box composition. TotalAt captures the combined
// price at composition time; the cart remains the source of truth for what
// is actually purchased.
type Box struct {
	ID         string          `json:"id"`
	ProductIDs []string        `json:"product_ids"`
	Message    string          `json:"message,omitempty"`
	TotalAt    decimal.Decimal `json:"total_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Catalog is the slice of the catalog store the gift box flow needs.
type Catalog interface {
	GetByID(id string) (*catalog.Product, error)
}

// CartSink receives the composed box's products.
type CartSink interface {
	Add(product catalog.Product, quantity int, image *catalog.ProductImage) error
}

// Service validates and persists gift box compositions.
type Service struct {
	catalog Catalog
	carts   CartSink
	store   localstore.Store
	lg      *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService creates a gift box Service.
func NewService(cat Catalog, carts CartSink, store localstore.Store, lg *zap.Logger) *Service {
	return &Service{
		catalog: cat,
		carts:   carts,
		store:   store,
		lg:      lg,
		now:     time.Now,
	}
}

// Compose validates the selection, adds one unit of every product to the
// cart, and persists the composition record. Validation happens before any
// cart mutation, so a rejected box leaves the cart untouched.
func (s *Service) Compose(productIDs []string, message string) (*Box, error) {
	if len(productIDs) < MinProducts {
		return nil, ErrTooFewProducts
	}
	if len(productIDs) > MaxProducts {
		return nil, ErrTooManyProducts
	}

	seen := make(map[string]struct{}, len(productIDs))
	products := make([]catalog.Product, 0, len(productIDs))
	total := decimal.Zero
	for _, id := range productIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[id] = struct{}{}

		p, err := s.catalog.GetByID(id)
		if err != nil || !p.IsAvailable {
			return nil, &UnavailableProductError{ProductID: id}
		}
		products = append(products, *p)
		total = total.Add(p.Price)
	}

	for _, p := range products {
		if err := s.carts.Add(p, 1, nil); err != nil {
			return nil, errors.Wrapf(err, "add product %s to cart", p.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	boxes, err := localstore.Load[[]Box](s.store, storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load gift boxes")
	}

	box := Box{
		ID:         uuid.New().String(),
		ProductIDs: productIDs,
		Message:    message,
		TotalAt:    total.Round(2),
		CreatedAt:  s.now(),
	}
	boxes = append(boxes, box)
	if err := localstore.Save(s.store, storageKey, boxes); err != nil {
		// The cart already holds the products; losing the composition
		// record is a warning, not a failure of the flow.
		s.lg.Warn("gift box mirror write failed", zap.Error(err))
	}

	s.lg.Info("gift box composed",
		zap.Int("products", len(productIDs)),
		zap.String("total", box.TotalAt.String()),
	)
	return &box, nil
}

// List returns every persisted gift box composition, oldest first.
func (s *Service) List() ([]Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boxes, err := localstore.Load[[]Box](s.store, storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load gift boxes")
	}
	return boxes, nil
}
