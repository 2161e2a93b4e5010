package cache

import (
	"context"
	"time"

	"github.com/embedtok/embedtok/internal/domain/model"
)

// EmbedCache defines the interface for caching resolved video metadata,
// keyed by the canonical request URL (scheme + host + path, query stripped).
// Implementations should handle serialization/deserialization transparently.
type EmbedCache interface {
	// Get retrieves a video from cache by canonical URL.
	// Returns nil, nil if the key is not present (cache miss).
	Get(ctx context.Context, canonicalURL string) (*model.Video, error)

	// Set stores a video in cache with the specified TTL.
	Set(ctx context.Context, canonicalURL string, video *model.Video, ttl time.Duration) error
}
