package ports

import (
	"context"
	"time"
)

// Cache is a small key-value capability for best-effort metadata
// (import stats, last export time). Backed by the app_kv table.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
