package review

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/storage/localstore"
)

// Persisted collections. Submitted reviews are append-only; helpful counts
// for ALL reviews (seeded and submitted alike) accumulate in a single
// override map applied at read time, so seeded template reviews stay
// immutable while their displayed count survives a reload. The marked set
// makes helpful votes idempotent per session.
const (
	submittedKey = "product_reviews"
	helpfulKey   = "helpful_counts"
	markedKey    = "helpful_reviews"
)

// Sentinel errors for review submission and helpful voting.
var (
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrMissingFields = errors.New("title, body, customer name and email are required")
	ErrNotFound      = errors.New("review not found")
	ErrAlreadyMarked = errors.New("review already marked helpful in this session")
)

// SeededSource supplies the read-only template reviews shipped with the
// catalog. Implemented by catalog.Store.
type SeededSource interface {
	SeededReviewsForProduct(productID string) []Review
	HasSeededReview(reviewID string) bool
}

// SubmitRequest carries the fields of a new user-submitted review.
type SubmitRequest struct {
	ProductID     string
	Rating        int
	Title         string
	Body          string
	CustomerName  string
	CustomerEmail string
}

// Service merges seeded and user-submitted reviews, validates submissions,
// and tracks per-session helpful votes.
type Service struct {
	seeded SeededSource
	store  localstore.Store
	lg     *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewService creates a review Service over the given seeded source and
// backing store.
func NewService(seeded SeededSource, store localstore.Store, lg *zap.Logger) *Service {
	return &Service{
		seeded: seeded,
		store:  store,
		lg:     lg,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// ListForProduct merges seeded and submitted reviews for the product into a
// single sequence ordered newest first. Ordering is stable: reviews with
// equal timestamps keep seeded-before-submitted source order.
func (s *Service) ListForProduct(productID string) ([]Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	submitted, err := localstore.Load[[]Review](s.store, submittedKey)
	if err != nil {
		return nil, errors.Wrap(err, "load submitted reviews")
	}
	overrides, err := localstore.Load[map[string]int](s.store, helpfulKey)
	if err != nil {
		return nil, errors.Wrap(err, "load helpful counts")
	}

	merged := s.seeded.SeededReviewsForProduct(productID)
	for _, r := range submitted {
		if r.ProductID == productID {
			merged = append(merged, r)
		}
	}
	for i := range merged {
		merged[i].HelpfulCount += overrides[merged[i].ID]
	}

	slices.SortStableFunc(merged, func(a, b Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return merged, nil
}

// Submit validates and stores a new review. New reviews start with zero
// helpful votes and are never verified purchases, since no order linkage is
// checked in this flow.
func (s *Service) Submit(req SubmitRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" ||
		strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	submitted, err := localstore.Load[[]Review](s.store, submittedKey)
	if err != nil {
		return nil, errors.Wrap(err, "load submitted reviews")
	}

	r := Review{
		ID:                 s.newID(),
		ProductID:          req.ProductID,
		CustomerName:       strings.TrimSpace(req.CustomerName),
		CustomerEmail:      strings.TrimSpace(req.CustomerEmail),
		Rating:             req.Rating,
		Title:              strings.TrimSpace(req.Title),
		Body:               strings.TrimSpace(req.Body),
		IsVerifiedPurchase: false,
		HelpfulCount:       0,
		CreatedAt:          s.now(),
	}

	submitted = append(submitted, r)
	if err := localstore.Save(s.store, submittedKey, submitted); err != nil {
		return nil, errors.Wrap(err, "persist review")
	}

	s.lg.Info("review submitted",
		zap.String("product_id", r.ProductID),
		zap.Int("rating", r.Rating),
	)
	return &r, nil
}

// MarkHelpful records a helpful vote for the review. A session may vote for
// a given review at most once; repeated votes return ErrAlreadyMarked and do
// not increment the count.
func (s *Service) MarkHelpful(reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked, err := localstore.Load[[]string](s.store, markedKey)
	if err != nil {
		return errors.Wrap(err, "load marked set")
	}
	if slices.Contains(marked, reviewID) {
		return ErrAlreadyMarked
	}

	if !s.reviewExists(reviewID) {
		return ErrNotFound
	}

	overrides, err := localstore.Load[map[string]int](s.store, helpfulKey)
	if err != nil {
		return errors.Wrap(err, "load helpful counts")
	}
	if overrides == nil {
		overrides = make(map[string]int)
	}
	overrides[reviewID]++
	if err := localstore.Save(s.store, helpfulKey, overrides); err != nil {
		return errors.Wrap(err, "persist helpful counts")
	}

	marked = append(marked, reviewID)
	if err := localstore.Save(s.store, markedKey, marked); err != nil {
		return errors.Wrap(err, "persist marked set")
	}
	return nil
}

// reviewExists reports whether reviewID belongs to a submitted or seeded
// review. Caller must hold s.mu.
func (s *Service) reviewExists(reviewID string) bool {
	submitted, err := localstore.Load[[]Review](s.store, submittedKey)
	if err == nil {
		for _, r := range submitted {
			if r.ID == reviewID {
				return true
			}
		}
	}
	return s.seeded.HasSeededReview(reviewID)
}
