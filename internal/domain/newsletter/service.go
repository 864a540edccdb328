// Package newsletter implements the subscription list with duplicate
// suppression: a bloom filter answers the common "definitely new" case
// without scanning, and an exact membership check confirms suspected
// duplicates.
package newsletter

import (
	"slices"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/storage/localstore"
)

const storageKey = "newsletter_subscriptions"

const (
	bloomCapacity = 100_000
	bloomFPR      = 0.001
)

// Sentinel errors for subscription attempts.
var (
	ErrInvalidEmail      = errors.New("a valid email address is required")
	ErrAlreadySubscribed = errors.New("this email is already subscribed")
)

// Service owns the subscription set. Emails are normalized (trimmed,
// lowercased) before membership checks, so the same address in different
// casing counts as one subscription.
type Service struct {
	store localstore.Store
	lg    *zap.Logger

	mu     sync.Mutex
	emails []string
	filter *bloom.BloomFilter
}

// NewService restores the subscription list and seeds the bloom filter from
// it.
func NewService(store localstore.Store, lg *zap.Logger) *Service {
	emails, err := localstore.Load[[]string](store, storageKey)
	if err != nil {
		lg.Warn("newsletter restore failed, starting empty", zap.Error(err))
		emails = nil
	}

	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	for _, e := range emails {
		filter.AddString(e)
	}

	return &Service{
		store:  store,
		lg:     lg,
		emails: emails,
		filter: filter,
	}
}

// Subscribe adds the email to the list. A duplicate attempt returns
// ErrAlreadySubscribed and leaves the stored set unchanged.
func (s *Service) Subscribe(email string) error {
	email = Normalize(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Bloom says "maybe": confirm against the exact list before rejecting,
	// since false positives must not turn away a new subscriber.
	if s.filter.TestString(email) && slices.Contains(s.emails, email) {
		return ErrAlreadySubscribed
	}

	s.emails = append(s.emails, email)
	s.filter.AddString(email)
	if err := localstore.Save(s.store, storageKey, s.emails); err != nil {
		s.lg.Warn("newsletter mirror write failed", zap.Error(err))
	}
	return nil
}

// Subscribers returns a copy of the subscription list in insertion order.
func (s *Service) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.emails))
	copy(out, s.emails)
	return out
}

// Normalize maps an email to its canonical comparison form.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail applies the same light-touch shape check the storefront form
// uses: one @ with a dotted domain. Deliverability is not this core's
// problem.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.Contains(domain, "@")
}
