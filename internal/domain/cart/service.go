package cart

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

// storageKey is the durable collection the cart mirrors to.
const storageKey = "cart"

// Service owns the cart entry list for one browsing session. In-memory state
// is authoritative: every mutation is mirrored to the store, and a failed
// mirror write is logged as a warning without failing the operation.
type Service struct {
	store localstore.Store
	lg    *zap.Logger

	mu      sync.Mutex
	entries []Entry
}

// NewService restores the cart from the store (an absent or damaged mirror
// yields an empty cart) and returns a ready Service.
func NewService(store localstore.Store, lg *zap.Logger) *Service {
	entries, err := localstore.Load[[]Entry](store, storageKey)
	if err != nil {
		lg.Warn("cart restore failed, starting empty", zap.Error(err))
		entries = nil
	}
	// Drop entries a broken mirror could have left at quantity zero.
	entries = slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Quantity < 1
	})
	return &Service{
		store:   store,
		lg:      lg,
		entries: entries,
	}
}

// Add puts quantity units of product into the cart. If an entry for the
// product already exists its quantity is incremented and, when image is
// non-nil, its chosen image replaced; otherwise a new entry is appended,
// preserving insertion order. Quantities below 1 are rejected.
func (s *Service) Add(product catalog.Product, quantity int, image *catalog.ProductImage) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.entries[i].Quantity += quantity
		if image != nil {
			s.entries[i].Image = image
		}
	} else {
		s.entries = append(s.entries, Entry{
			Product:  product,
			Quantity: quantity,
			Image:    image,
		})
	}

	s.persist()
	return nil
}

// Remove deletes the entry for productID. Removing an absent product is a
// no-op, not an error.
func (s *Service) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.persist()
}

// SetQuantity sets the entry's quantity to exactly quantity. A quantity of
// zero or below removes the entry. Setting quantity for an absent product is
// a no-op.
func (s *Service) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.entries[i].Quantity = quantity
	s.persist()
}

// Clear empties the cart.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist()
}

// Entries returns a copy of the cart in insertion order.
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the sum of all entry quantities (the cart badge value).
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return n
}

// Subtotal returns the sum of price times quantity across all entries.
// Rounding is left to the display edge so repeated mutations cannot
// accumulate rounding error.
func (s *Service) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// indexOf returns the position of the entry for productID, or -1.
// Caller must hold s.mu.
func (s *Service) indexOf(productID string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Product.ID == productID
	})
}

// persist mirrors the current entries to the store. Caller must hold s.mu.
func (s *Service) persist() {
	if err := localstore.Save(s.store, storageKey, s.entries); err != nil {
		s.lg.Warn("cart mirror write failed, in-memory state remains authoritative",
			zap.Error(err),
		)
	}
}
