package repository

import (
	"context"

	"github.com/embedtok/embedtok/internal/domain/model"
)

// MetadataProvider fetches video metadata from the upstream API.
type MetadataProvider interface {
	// Fetch retrieves the metadata for the post identified by the
	// canonical path (/@handle/video/<id>).
	// Returns ErrUpstreamUnavailable on transport or HTTP failure and
	// ErrUpstreamRateLimited when the provider reports an application
	// error code.
	Fetch(ctx context.Context, canonicalPath string) (*model.Video, error)
}
