// Package id generates time-sortable trade references.
package id

import (
	cryptoRand "crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader = ulid.Monotonic(cryptoRand.Reader, 0)
)

// NewReference returns a ULID for a trade executed at t.
// References created within the same millisecond stay strictly increasing.
func NewReference(t time.Time) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	ref, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

