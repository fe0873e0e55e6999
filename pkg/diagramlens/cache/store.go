// Package cache stores model responses keyed by the prompt that produced
// them, so repeated explanations of an unchanged element cost nothing.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// Store persists cached responses.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a value.
	// Returns ErrNotFound if the key is absent.
	Get(key string) (string, error)

	// Put stores a value, overwriting any existing entry.
	Put(key, value string) error

	// Delete removes an entry.
	// Returns nil if the key doesn't exist.
	Delete(key string) error

	// Len returns the number of stored entries.
	Len() int

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for cache operations.
var (
	// ErrNotFound indicates a key has no cached value.
	ErrNotFound = errors.New("cache entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("cache store closed")
)

// Key derives a fixed-length cache key from its parts.
// Parts are NUL-separated so ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
