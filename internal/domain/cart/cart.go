// Package cart implements the session shopping cart: an ordered list of
// product entries mirrored to durable local storage on every mutation.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sritelangana/storefront/internal/domain/catalog"
)

// ErrInvalidQuantity is returned when an add uses a quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Entry is one line of the cart. Product and Image are borrowed from the
// catalog; they are serialized with the entry so a restored session renders
// without a catalog lookup, but the catalog remains the source of truth.
type Entry struct {
	Product  catalog.Product       `json:"product"`
	Quantity int                   `json:"quantity"`
	Image    *catalog.ProductImage `json:"image,omitempty"`
}

// LineTotal returns price multiplied by quantity for this entry.
func (e Entry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
