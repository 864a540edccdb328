package localstore

import (
	"encoding/json"

	"github.com/go-faster/errors"
)

// schemaVersion is bumped whenever a persisted collection changes shape in a
// way old readers cannot coerce. Documents with a different version are
// treated as absent.
const schemaVersion = 1

// document is the envelope every persisted collection is wrapped in.
type document[T any] struct {
	Version int `json:"version"`
	Data    T   `json:"data"`
}

// Load reads the collection stored under key into a value of type T. A
// missing key, malformed JSON, or a version mismatch all yield the zero
// value of T and a nil error; only genuine I/O failures are reported.
func Load[T any](s Store, key string) (T, error) {
	var zero T

	raw, err := s.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, nil
		}
		return zero, errors.Wrapf(err, "load %q", key)
	}

	var doc document[T]
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Malformed stored data degrades to an empty collection.
		return zero, nil
	}
	if doc.Version != schemaVersion {
		return zero, nil
	}
	return doc.Data, nil
}

// Save writes the collection under key, wrapped in the versioned envelope.
func Save[T any](s Store, key string, value T) error {
	raw, err := json.Marshal(document[T]{
		Version: schemaVersion,
		Data:    value,
	})
	if err != nil {
		return errors.Wrapf(err, "encode %q", key)
	}
	if err := s.Set(key, raw); err != nil {
		return errors.Wrapf(err, "save %q", key)
	}
	return nil
}
