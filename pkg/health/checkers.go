package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// Writer is the slice of the storage port the writability check needs.
type Writer interface {
	Set(key string, value []byte) error
	Delete(key string) error
}

// StoreWritableCheck returns a readiness check that verifies the durable
// store accepts writes by storing and removing a probe key. A read-only disk
// or full volume turns the storefront unready before carts silently stop
// persisting.
func StoreWritableCheck(store Writer) CheckFunc {
	return func(_ context.Context) error {
		key := "healthz_probe"
		if err := store.Set(key, []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
			return errors.Wrap(err, "store write")
		}
		if err := store.Delete(key); err != nil {
			return errors.Wrap(err, "store cleanup")
		}
		return nil
	}
}

// GoroutineCountCheck returns a liveness check that fails when the goroutine
// count exceeds threshold, catching leaks before they exhaust memory.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if count := runtime.NumGoroutine(); count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}
