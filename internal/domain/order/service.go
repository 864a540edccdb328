package order

import (
	"crypto/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/cart"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

const storageKey = "orders"

// numberSuffixLen is the number of random characters appended to the
// timestamp component of an order number.
const numberSuffixLen = 6

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CartSource is the slice of the cart service the order builder consumes: a
// snapshot at checkout time, and a clear once the order is accepted.
type CartSource interface {
	Entries() []cart.Entry
	Clear()
}

// Pricing holds the shipping policy applied at checkout.
type Pricing struct {
	// ShippingFee is the flat shipping cost per order.
	ShippingFee decimal.Decimal
	// FreeShippingOver waives the fee when the subtotal reaches this value.
	// A zero value disables free shipping.
	FreeShippingOver decimal.Decimal
	// NumberPrefix is the leading segment of generated order numbers.
	NumberPrefix string
}

// Service builds and looks up orders. The persisted order collection is
// append-only: orders are never mutated or deleted here.
type Service struct {
	store   localstore.Store
	carts   CartSource
	pricing Pricing
	lg      *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService creates an order Service with the given cart source, pricing
// policy, and backing store.
func NewService(store localstore.Store, carts CartSource, pricing Pricing, lg *zap.Logger) *Service {
	if pricing.NumberPrefix == "" {
		pricing.NumberPrefix = "STP"
	}
	return &Service{
		store:   store,
		carts:   carts,
		pricing: pricing,
		lg:      lg,
		now:     time.Now,
	}
}

// Place snapshots the current cart into an immutable order, persists it, and
// clears the cart. Line items copy product name and unit price at order
// time. Totals: subtotal = sum(price*qty); shipping is the flat fee, waived
// at or above the free-shipping threshold; total = subtotal + shipping -
// discount (discount is always zero here). Monetary values are rounded to
// two decimal places only on the stored order record.
func (s *Service) Place(address ShippingAddress, customer CustomerInfo) (*Order, error) {
	if customer.Name == "" || customer.Email == "" {
		return nil, ErrMissingCustomer
	}
	if address.FullName == "" || address.AddressLine1 == "" ||
		address.City == "" || address.State == "" || address.PostalCode == "" {
		return nil, ErrMissingAddress
	}

	entries := s.carts.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, len(entries))
	subtotal := decimal.Zero
	for i, e := range entries {
		line := e.LineTotal()
		items[i] = Item{
			ProductID:   e.Product.ID,
			ProductName: e.Product.Name,
			Quantity:    e.Quantity,
			UnitPrice:   e.Product.Price,
			LineTotal:   line.Round(2),
		}
		subtotal = subtotal.Add(line)
	}

	shipping := s.pricing.ShippingFee
	if s.pricing.FreeShippingOver.IsPositive() && subtotal.GreaterThanOrEqual(s.pricing.FreeShippingOver) {
		shipping = decimal.Zero
	}

	discount := decimal.Zero
	total := subtotal.Add(shipping).Sub(discount)

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := localstore.Load[[]Order](s.store, storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load order collection")
	}

	now := s.now()
	o := Order{
		ID:              uuid.New().String(),
		Number:          s.uniqueNumber(stored, now),
		Customer:        customer,
		ShippingAddress: address,
		Items:           items,
		Subtotal:        subtotal.Round(2),
		ShippingCost:    shipping.Round(2),
		Discount:        discount.Round(2),
		Total:           total.Round(2),
		Status:          StatusConfirmed,
		PaymentStatus:   PaymentStatusPending,
		PaymentMethod:   PaymentMethodUPI,
		CreatedAt:       now,
	}

	stored = append(stored, o)
	if err := localstore.Save(s.store, storageKey, stored); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}

	// Placing an order empties the cart; the order record is now the only
	// owner of the purchased items.
	s.carts.Clear()

	s.lg.Info("order placed",
		zap.String("order_number", o.Number),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.String()),
	)
	return &o, nil
}

// GetByNumber returns the stored order with the given number, or ErrNotFound.
func (s *Service) GetByNumber(number string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := localstore.Load[[]Order](s.store, storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load order collection")
	}
	for i := range stored {
		if stored[i].Number == number {
			return &stored[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns every stored order, oldest first.
func (s *Service) List() ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := localstore.Load[[]Order](s.store, storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load order collection")
	}
	return stored, nil
}

// uniqueNumber generates an order number of the form
// PREFIX-<millisecond timestamp in base36><random suffix> and re-rolls until
// it does not collide with any stored order number. Caller must hold s.mu.
func (s *Service) uniqueNumber(stored []Order, now time.Time) string {
	for {
		n := formatNumber(s.pricing.NumberPrefix, now)
		if !numberTaken(stored, n) {
			return n
		}
	}
}

func formatNumber(prefix string, now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	suffix := make([]byte, numberSuffixLen)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// timestamp low bits to stay deterministic rather than panic.
		for i := range suffix {
			suffix[i] = numberAlphabet[(now.UnixNano()>>uint(i*5))&31]
		}
	} else {
		for i := range suffix {
			suffix[i] = numberAlphabet[int(suffix[i])%len(numberAlphabet)]
		}
	}
	return prefix + "-" + ts + string(suffix)
}

func numberTaken(stored []Order, number string) bool {
	for i := range stored {
		if stored[i].Number == number {
			return true
		}
	}
	return false
}
