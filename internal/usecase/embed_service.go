package usecase

import (
	"context"
	"log/slog"

	"github.com/embedtok/embedtok/internal/domain/model"
	"github.com/embedtok/embedtok/internal/domain/repository"
	"github.com/embedtok/embedtok/internal/infrastructure/cache"
	"github.com/embedtok/embedtok/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// EmbedService resolves video metadata for embed rendering.
type EmbedService interface {
	// GetEmbed returns the video for the given canonical URL, consulting
	// the edge cache before the metadata provider. canonicalURL is the
	// cache key (scheme + host + path, query stripped); canonicalPath is
	// the post path used for upstream fetches.
	GetEmbed(ctx context.Context, canonicalURL, canonicalPath string) (*model.Video, error)
}

// embedService implements the cache-aside pattern over the metadata
// provider. Cache population is handed to a writeback queue so the response
// never waits on a store.
type embedService struct {
	provider  repository.MetadataProvider
	cache     cache.EmbedCache
	writeback Writeback
	sfGroup   singleflight.Group
}

// NewEmbedService creates a new EmbedService.
func NewEmbedService(
	provider repository.MetadataProvider,
	embedCache cache.EmbedCache,
	writeback Writeback,
) EmbedService {
	return &embedService{
		provider:  provider,
		cache:     embedCache,
		writeback: writeback,
	}
}

// GetEmbed retrieves video metadata with caching.
// Uses singleflight to collapse concurrent requests for the same cold key
// into a single upstream fetch.
func (s *embedService) GetEmbed(ctx context.Context, canonicalURL, canonicalPath string) (*model.Video, error) {
	result, err, shared := s.sfGroup.Do(canonicalURL, func() (any, error) {
		return s.getWithCache(ctx, canonicalURL, canonicalPath)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

func (s *embedService) getWithCache(ctx context.Context, canonicalURL, canonicalPath string) (*model.Video, error) {
	video, err := s.cache.Get(ctx, canonicalURL)
	if err != nil {
		// A broken cache degrades to an upstream fetch.
		slog.Warn("cache get failed, falling back to metadata API",
			"canonical_url", canonicalURL,
			"error", err,
		)
	}

	if video != nil {
		return video, nil // Cache hit
	}

	video, err = s.provider.Fetch(ctx, canonicalPath)
	if err != nil {
		return nil, err
	}

	s.writeback.Enqueue(canonicalURL, video)

	return video, nil
}
