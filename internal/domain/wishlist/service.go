// Package wishlist implements the saved-products set, persisted with the
// same mirror-on-mutation pattern as the cart but without quantities.
package wishlist

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

const storageKey = "wishlist"

// Service owns the wishlist for one browsing session. Uniqueness is by
// product ID; adding a product that is already saved is a no-op.
type Service struct {
	store localstore.Store
	lg    *zap.Logger

	mu       sync.Mutex
	products []catalog.Product
}

// NewService restores the wishlist from the store; a missing or damaged
// mirror yields an empty wishlist.
func NewService(store localstore.Store, lg *zap.Logger) *Service {
	products, err := localstore.Load[[]catalog.Product](store, storageKey)
	if err != nil {
		lg.Warn("wishlist restore failed, starting empty", zap.Error(err))
		products = nil
	}
	return &Service{
		store:    store,
		lg:       lg,
		products: products,
	}
}

// Add saves the product. Adding an already-saved product is a no-op.
func (s *Service) Add(product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		return
	}
	s.products = append(s.products, product)
	s.persist()
}

// Remove drops the product from the wishlist; absent products are a no-op.
func (s *Service) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.persist()
}

// Contains reports whether the product is saved.
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(productID) >= 0
}

// Products returns a copy of the saved products in insertion order.
func (s *Service) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) indexOf(productID string) int {
	return slices.IndexFunc(s.products, func(p catalog.Product) bool {
		return p.ID == productID
	})
}

func (s *Service) persist() {
	if err := localstore.Save(s.store, storageKey, s.products); err != nil {
		s.lg.Warn("wishlist mirror write failed", zap.Error(err))
	}
}
