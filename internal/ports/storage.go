package ports

import "context"

// KeyValueStore persists small string values that must survive restarts, such
// as the theme preference. Implementations must be safe for concurrent use.
// Get reports found=false (and a nil error) for a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
