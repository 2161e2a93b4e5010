package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/embedtok/embedtok/internal/domain/model"
)

// mockMetadataProvider provides a configurable mock for MetadataProvider.
type mockMetadataProvider struct {
	mu      sync.Mutex
	calls   int
	fetchFn func(ctx context.Context, canonicalPath string) (*model.Video, error)
}

func (m *mockMetadataProvider) Fetch(ctx context.Context, canonicalPath string) (*model.Video, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.fetchFn != nil {
		return m.fetchFn(ctx, canonicalPath)
	}
	return nil, nil
}

func (m *mockMetadataProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockEmbedCache provides a configurable mock for EmbedCache.
type mockEmbedCache struct {
	mu    sync.Mutex
	getFn func(ctx context.Context, canonicalURL string) (*model.Video, error)
	setFn func(ctx context.Context, canonicalURL string, video *model.Video, ttl time.Duration) error

	stored map[string]*model.Video
}

func (m *mockEmbedCache) Get(ctx context.Context, canonicalURL string) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, canonicalURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored[canonicalURL], nil
}

func (m *mockEmbedCache) Set(ctx context.Context, canonicalURL string, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, canonicalURL, video, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored == nil {
		m.stored = make(map[string]*model.Video)
	}
	m.stored[canonicalURL] = video
	return nil
}

// syncWriteback applies cache writes inline, so tests can assert on the
// cache state without waiting for a background worker.
type syncWriteback struct {
	cache *mockEmbedCache
	ttl   time.Duration
}

func (w *syncWriteback) Enqueue(canonicalURL string, video *model.Video) {
	_ = w.cache.Set(context.Background(), canonicalURL, video, w.ttl)
}

// dropWriteback discards all jobs.
type dropWriteback struct{}

func (dropWriteback) Enqueue(string, *model.Video) {}

func testVideo() *model.Video {
	return &model.Video{
		ID:          "999",
		Description: "test clip",
		Author: model.Creator{
			ID:       "1",
			Username: "alice",
			Nickname: "Alice",
		},
		PlayURL: "https://www.tikwm.com/video/media/hdplay/999.mp4",
	}
}
