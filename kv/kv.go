// Package kv provides the namespaced key-value persistence layer that every
// homevault store is built on.
//
// # Overview
//
// Backend is the minimal contract the stores consume: byte values under
// string keys, plus key enumeration for the schema-version guard. Three
// implementations ship with the package: a SQLite-backed one for the on-device
// database, an in-memory one for tests, and a decorator that transparently
// encrypts values with a passphrase-derived key.
//
// # Key layout
//
// Logical collections live under fixed names and prefixes (see keys.go):
// one list per entity for its records, one global list each for people, pets,
// households, contacts and documents, a schema-version scalar, and the
// onboarding flags. The guard purges exactly this set on a version mismatch.
package kv

import "context"

// Backend is an opaque on-device key-value store.
//
// Implementations must treat each Set as an atomic replacement of the whole
// value; the stores rely on this when rewriting a full collection.
type Backend interface {
	// Get returns the value stored under key, or common.ErrorNotFound
	// when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Absent keys are ignored. When more
	// than one key is passed the deletion is applied as a single batch.
	Delete(ctx context.Context, keys ...string) error

	// Keys enumerates every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
