package wishlist

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

func testProduct(id string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "Product " + id,
		Slug:  "product-" + id,
		Price: decimal.NewFromInt(100),
	}
}

func TestAdd_DuplicateIsNoop(t *testing.T) {
	svc := NewService(localstore.NewMemory(), zaptest.NewLogger(t))

	svc.Add(testProduct("p1"))
	svc.Add(testProduct("p1"))
	svc.Add(testProduct("p2"))

	assert.Len(t, svc.Products(), 2)
	assert.True(t, svc.Contains("p1"))
	assert.True(t, svc.Contains("p2"))
}

func TestRemove(t *testing.T) {
	svc := NewService(localstore.NewMemory(), zaptest.NewLogger(t))

	svc.Add(testProduct("p1"))
	svc.Remove("p1")
	svc.Remove("p1") // absent: no-op

	assert.False(t, svc.Contains("p1"))
	assert.Empty(t, svc.Products())
}

func TestRestore_RoundTrip(t *testing.T) {
	store := localstore.NewMemory()
	lg := zaptest.NewLogger(t)

	svc := NewService(store, lg)
	svc.Add(testProduct("p1"))
	svc.Add(testProduct("p2"))

	restored := NewService(store, lg)
	products := restored.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
}
