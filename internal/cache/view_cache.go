// Package cache stores rendered views keyed by route path and lets mutations
// mark them stale.
package cache

import (
	"context"
	"time"
)

// Revalidator marks every cached rendering of a path as stale
type Revalidator interface {
	RevalidatePath(ctx context.Context, path string) error
}

// ViewCache stores rendered view payloads by path. A path may hold several
// variants (for example one per page); revalidating the path drops all of them.
//
// Every revalidation also advances the path's generation. Readers take the
// generation before loading data and hand it to Set, which discards the
// payload if the path was revalidated in between.
type ViewCache interface {
	Revalidator
	Get(ctx context.Context, path, variant string) ([]byte, bool, error)
	Generation(ctx context.Context, path string) (int64, error)
	Set(ctx context.Context, path, variant string, gen int64, payload []byte) error
}

// viewKey namespaces cached views
func viewKey(path string) string {
	return "view:" + path
}

// generationKey holds the revalidation counter of path
func generationKey(path string) string {
	return "view:gen:" + path
}

// NoopCache always misses and ignores writes
type NoopCache struct{}

// Get always returns a miss.
func (NoopCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	return nil, false, nil
}

// Generation is always zero.
func (NoopCache) Generation(ctx context.Context, path string) (int64, error) { return 0, nil }

// Set is a no-op.
func (NoopCache) Set(ctx context.Context, path, variant string, gen int64, payload []byte) error {
	return nil
}

// RevalidatePath is a no-op.
func (NoopCache) RevalidatePath(ctx context.Context, path string) error { return nil }

var _ ViewCache = NoopCache{}

// defaultTTL bounds how long a view may be served without a mutation
const defaultTTL = 5 * time.Minute
