// Package storage is the thin adapter over the external object store.
package storage

import "context"

// Gateway abstracts fetching and writing object bytes by (container, key).
// Implementations do no caching, batching or retrying; transient failures
// are classified and surfaced so the delivery layer can redeliver.
type Gateway interface {
	Fetch(ctx context.Context, container, key string) ([]byte, error)
	Write(ctx context.Context, container, key string, data []byte, contentType string) error
}
