package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/storage/localstore"
)

func testProduct(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:          id,
		Name:        "Product " + id,
		Slug:        "product-" + id,
		Price:       decimal.NewFromInt(price),
		IsAvailable: true,
	}
}

func newTestService(t *testing.T) (*Service, *localstore.Memory) {
	t.Helper()
	store := localstore.NewMemory()
	return NewService(store, zaptest.NewLogger(t)), store
}

func TestAdd_RepeatedAddsMergeIntoOneEntry(t *testing.T) {
	svc, _ := newTestService(t)
	p := testProduct("p1", 250)

	require.NoError(t, svc.Add(p, 2, nil))
	require.NoError(t, svc.Add(p, 3, nil))
	require.NoError(t, svc.Add(p, 1, nil))

	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 6, entries[0].Quantity)
	assert.Equal(t, 6, svc.Count())
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	p := testProduct("p1", 100)

	require.ErrorIs(t, svc.Add(p, 0, nil), ErrInvalidQuantity)
	require.ErrorIs(t, svc.Add(p, -4, nil), ErrInvalidQuantity)
	assert.Empty(t, svc.Entries())
}

func TestAdd_UpdatesChosenImage(t *testing.T) {
	svc, _ := newTestService(t)
	p := testProduct("p1", 100)
	img1 := &catalog.ProductImage{ID: "i1", ProductID: "p1"}
	img2 := &catalog.ProductImage{ID: "i2", ProductID: "p1"}

	require.NoError(t, svc.Add(p, 1, img1))
	require.NoError(t, svc.Add(p, 1, img2))

	entries := svc.Entries()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Image)
	assert.Equal(t, "i2", entries[0].Image.ID)

	// A nil image on a later add keeps the previous choice.
	require.NoError(t, svc.Add(p, 1, nil))
	assert.Equal(t, "i2", svc.Entries()[0].Image.ID)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Add(testProduct("a", 10), 1, nil))
	require.NoError(t, svc.Add(testProduct("b", 20), 1, nil))
	require.NoError(t, svc.Add(testProduct("c", 30), 1, nil))
	require.NoError(t, svc.Add(testProduct("b", 20), 1, nil))

	entries := svc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Product.ID)
	assert.Equal(t, "b", entries[1].Product.ID)
	assert.Equal(t, "c", entries[2].Product.ID)
}

func TestRemove_AbsentProductIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(testProduct("p1", 100), 1, nil))

	svc.Remove("p2")
	assert.Len(t, svc.Entries(), 1)
}

func TestSetQuantity_ZeroRemovesEntry(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(testProduct("p1", 100), 3, nil))

	svc.SetQuantity("p1", 0)
	assert.Empty(t, svc.Entries())
}

func TestSetQuantity_NegativeBehavesLikeZero(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(testProduct("p1", 100), 3, nil))

	svc.SetQuantity("p1", -7)
	assert.Empty(t, svc.Entries())
	assert.Equal(t, 0, svc.Count())
}

func TestSetQuantity_SetsExactValueNotAdditive(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(testProduct("p1", 100), 3, nil))

	svc.SetQuantity("p1", 5)
	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestSubtotal_MatchesPriceTimesQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Add(testProduct("p1", 250), 2, nil))
	require.NoError(t, svc.Add(testProduct("p2", 325), 1, nil))

	want := decimal.NewFromInt(250*2 + 325)
	assert.True(t, want.Equal(svc.Subtotal()), "want %s got %s", want, svc.Subtotal())
}

// The worked scenario from the storefront contract: add, resize, remove.
func TestCartScenario_AddResizeRemove(t *testing.T) {
	svc, _ := newTestService(t)
	p := testProduct("pa", 250)

	require.NoError(t, svc.Add(p, 2, nil))
	assert.Equal(t, 2, svc.Count())
	assert.True(t, decimal.NewFromInt(500).Equal(svc.Subtotal()))

	svc.SetQuantity("pa", 5)
	assert.True(t, decimal.NewFromInt(1250).Equal(svc.Subtotal()))

	svc.Remove("pa")
	assert.Empty(t, svc.Entries())
	assert.Equal(t, 0, svc.Count())
	assert.True(t, decimal.Zero.Equal(svc.Subtotal()))
}

func TestPersistRestore_RoundTrip(t *testing.T) {
	store := localstore.NewMemory()
	lg := zaptest.NewLogger(t)

	svc := NewService(store, lg)
	img := &catalog.ProductImage{ID: "i1", ProductID: "p1", IsPrimary: true}
	require.NoError(t, svc.Add(testProduct("p1", 250), 2, img))
	require.NoError(t, svc.Add(testProduct("p2", 500), 1, nil))

	// Simulate a session restart against the same backing store.
	restored := NewService(store, lg)

	want := svc.Entries()
	got := restored.Entries()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Product.ID, got[i].Product.ID)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		if want[i].Image != nil {
			require.NotNil(t, got[i].Image)
			assert.Equal(t, want[i].Image.ID, got[i].Image.ID)
		}
	}
}

func TestRestore_MalformedMirrorStartsEmpty(t *testing.T) {
	store := localstore.NewMemory()
	require.NoError(t, store.Set("cart", []byte(`{{{garbage`)))

	svc := NewService(store, zaptest.NewLogger(t))
	assert.Empty(t, svc.Entries())
}

func TestStorageFailure_InMemoryStateStaysAuthoritative(t *testing.T) {
	store := localstore.NewMemory()
	svc := NewService(store, zaptest.NewLogger(t))

	store.FailWrites = true
	require.NoError(t, svc.Add(testProduct("p1", 250), 2, nil))

	// The mutation survived in memory even though the mirror write failed.
	assert.Equal(t, 2, svc.Count())
	assert.True(t, decimal.NewFromInt(500).Equal(svc.Subtotal()))
}
