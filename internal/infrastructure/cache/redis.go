package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/embedtok/embedtok/internal/domain/model"
	"github.com/embedtok/embedtok/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	// embedCacheKeyPrefix is the prefix for embed cache keys in Redis.
	embedCacheKeyPrefix = "embed:"
)

// videoJSON is the JSON representation of a Video for caching.
// Using an explicit struct avoids coupling to the domain model's shape.
type videoJSON struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	ShareCount   int64     `json:"share_count"`
	ViewCount    int64     `json:"view_count"`
	Author       userJSON  `json:"author"`
	Music        trackJSON `json:"music"`
	PlayURL      string    `json:"play_url"`
}

type userJSON struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type trackJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatorName string `json:"creator_name"`
	PlayURL     string `json:"play_url"`
}

// RedisEmbedCache implements EmbedCache using Redis as the backing store.
type RedisEmbedCache struct {
	client *redis.Client
}

// NewRedisEmbedCache creates a new Redis-backed embed cache.
func NewRedisEmbedCache(client *redis.Client) *RedisEmbedCache {
	return &RedisEmbedCache{
		client: client,
	}
}

// Get retrieves a video from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisEmbedCache) Get(ctx context.Context, canonicalURL string) (*model.Video, error) {
	key := c.buildKey(canonicalURL)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	video, err := c.deserialize(data)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("deserialize video: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return video, nil
}

// Set stores a video in Redis cache with the specified TTL.
func (c *RedisEmbedCache) Set(ctx context.Context, canonicalURL string, video *model.Video, ttl time.Duration) error {
	key := c.buildKey(canonicalURL)

	data, err := c.serialize(video)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("serialize video: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// buildKey constructs the Redis key for a canonical URL.
func (c *RedisEmbedCache) buildKey(canonicalURL string) string {
	return embedCacheKeyPrefix + canonicalURL
}

// serialize converts a Video to JSON bytes.
func (c *RedisEmbedCache) serialize(video *model.Video) ([]byte, error) {
	v := videoJSON{
		ID:           video.ID,
		Description:  video.Description,
		LikeCount:    video.LikeCount,
		CommentCount: video.CommentCount,
		ShareCount:   video.ShareCount,
		ViewCount:    video.ViewCount,
		Author: userJSON{
			ID:        video.Author.ID,
			Username:  video.Author.Username,
			Nickname:  video.Author.Nickname,
			AvatarURL: video.Author.AvatarURL,
		},
		Music: trackJSON{
			ID:          video.Music.ID,
			Title:       video.Music.Title,
			CreatorName: video.Music.CreatorName,
			PlayURL:     video.Music.PlayURL,
		},
		PlayURL: video.PlayURL,
	}
	return json.Marshal(v)
}

// deserialize converts JSON bytes to a Video.
func (c *RedisEmbedCache) deserialize(data []byte) (*model.Video, error) {
	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	return &model.Video{
		ID:           v.ID,
		Description:  v.Description,
		LikeCount:    v.LikeCount,
		CommentCount: v.CommentCount,
		ShareCount:   v.ShareCount,
		ViewCount:    v.ViewCount,
		Author: model.Creator{
			ID:        v.Author.ID,
			Username:  v.Author.Username,
			Nickname:  v.Author.Nickname,
			AvatarURL: v.Author.AvatarURL,
		},
		Music: model.Track{
			ID:          v.Music.ID,
			Title:       v.Music.Title,
			CreatorName: v.Music.CreatorName,
			PlayURL:     v.Music.PlayURL,
		},
		PlayURL: v.PlayURL,
	}, nil
}
