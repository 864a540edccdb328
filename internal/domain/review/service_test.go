package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sritelangana/storefront/internal/storage/localstore"
)

// --- Mock seeded source ---

type mockSeeded struct {
	byProduct map[string][]Review
}

func (m *mockSeeded) SeededReviewsForProduct(productID string) []Review {
	return m.byProduct[productID]
}

func (m *mockSeeded) HasSeededReview(reviewID string) bool {
	for _, rs := range m.byProduct {
		for _, r := range rs {
			if r.ID == reviewID {
				return true
			}
		}
	}
	return false
}

// --- Helpers ---

func seededReview(id, productID string, rating int, created time.Time) Review {
	return Review{
		ID:           id,
		ProductID:    productID,
		CustomerName: "Seeded Customer",
		Rating:       rating,
		Title:        "Seeded",
		Body:         "Seeded review body",
		HelpfulCount: 3,
		CreatedAt:    created,
	}
}

func validSubmit(productID string) SubmitRequest {
	return SubmitRequest{
		ProductID:     productID,
		Rating:        4,
		Title:         "Tasty",
		Body:          "Fresh and well packed.",
		CustomerName:  "Ravi",
		CustomerEmail: "ravi@example.com",
	}
}

func newTestService(t *testing.T, seeded *mockSeeded) *Service {
	t.Helper()
	if seeded == nil {
		seeded = &mockSeeded{}
	}
	return NewService(seeded, localstore.NewMemory(), zaptest.NewLogger(t))
}

// --- Tests ---

func TestSubmit_RejectsOutOfRangeRating(t *testing.T) {
	svc := newTestService(t, nil)

	for _, rating := range []int{0, -1, 6, 100} {
		req := validSubmit("p1")
		req.Rating = rating
		_, err := svc.Submit(req)
		require.ErrorIs(t, err, ErrInvalidRating, "rating %d must be rejected", rating)
	}

	// Nothing was stored.
	reviews, err := svc.ListForProduct("p1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSubmit_RejectsMissingFields(t *testing.T) {
	svc := newTestService(t, nil)

	for _, mutate := range []func(*SubmitRequest){
		func(r *SubmitRequest) { r.Title = "  " },
		func(r *SubmitRequest) { r.Body = "" },
		func(r *SubmitRequest) { r.CustomerName = "" },
		func(r *SubmitRequest) { r.CustomerEmail = "" },
	} {
		req := validSubmit("p1")
		mutate(&req)
		_, err := svc.Submit(req)
		require.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestSubmit_StoresWithDefaults(t *testing.T) {
	svc := newTestService(t, nil)

	r, err := svc.Submit(validSubmit("p1"))
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 0, r.HelpfulCount)
	assert.False(t, r.IsVerifiedPurchase)
	assert.False(t, r.CreatedAt.IsZero())

	reviews, err := svc.ListForProduct("p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, r.ID, reviews[0].ID)
}

func TestListForProduct_MergesNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seeded := &mockSeeded{byProduct: map[string][]Review{
		"p1": {
			seededReview("seed-1", "p1", 5, base),
			seededReview("seed-2", "p1", 4, base.Add(48*time.Hour)),
		},
	}}
	svc := newTestService(t, seeded)
	svc.now = func() time.Time { return base.Add(24 * time.Hour) }

	_, err := svc.Submit(validSubmit("p1"))
	require.NoError(t, err)

	reviews, err := svc.ListForProduct("p1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "seed-2", reviews[0].ID, "newest first")
	assert.Equal(t, "Tasty", reviews[1].Title)
	assert.Equal(t, "seed-1", reviews[2].ID)
}

func TestListForProduct_FiltersByProduct(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Submit(validSubmit("p1"))
	require.NoError(t, err)
	_, err = svc.Submit(validSubmit("p2"))
	require.NoError(t, err)

	reviews, err := svc.ListForProduct("p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "p1", reviews[0].ProductID)
}

func TestMarkHelpful_IncrementsOnce(t *testing.T) {
	svc := newTestService(t, nil)

	r, err := svc.Submit(validSubmit("p1"))
	require.NoError(t, err)

	require.NoError(t, svc.MarkHelpful(r.ID))
	require.ErrorIs(t, svc.MarkHelpful(r.ID), ErrAlreadyMarked)

	reviews, err := svc.ListForProduct("p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 1, reviews[0].HelpfulCount, "double vote must not double count")
}

func TestMarkHelpful_SeededReviewOverrideSurvivesReload(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seeded := &mockSeeded{byProduct: map[string][]Review{
		"p1": {seededReview("seed-1", "p1", 5, base)},
	}}
	store := localstore.NewMemory()
	lg := zaptest.NewLogger(t)

	svc := NewService(seeded, store, lg)
	require.NoError(t, svc.MarkHelpful("seed-1"))

	// A fresh service over the same store sees the vote on top of the
	// seeded base count.
	restored := NewService(seeded, store, lg)
	reviews, err := restored.ListForProduct("p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].HelpfulCount)
}

func TestMarkHelpful_UnknownReview(t *testing.T) {
	svc := newTestService(t, nil)
	require.ErrorIs(t, svc.MarkHelpful("no-such-review"), ErrNotFound)
}

func TestSummarize(t *testing.T) {
	reviews := []Review{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 1},
	}

	s := Summarize(reviews)
	assert.Equal(t, 4, s.Total)
	assert.InDelta(t, 3.75, s.Average, 1e-9)
	assert.Equal(t, [5]int{1, 0, 0, 1, 2}, s.Distribution)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Zero(t, s.Average)
}
