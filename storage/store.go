// Package storage provides the key-value persistence port every
// repository depends on, with in-memory, Redis, and MongoDB backends.
// Values are whole JSON documents: every write replaces the full value
// under its key, so a read-modify-write cycle is the caller's unit of
// mutation. Writers in different processes sharing a backend race
// last-writer-wins; the portal assumes one process per deployment.
package storage

import "context"

// Store maps string keys to JSON-serializable values.
//
// Get unmarshals the stored value into out and reports whether the key
// existed; on a miss out is left untouched, so callers pre-load it with
// their default. Set marshals value and replaces whatever was stored.
type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}
