package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/embedtok/embedtok/internal/domain/model"
	"github.com/embedtok/embedtok/internal/infrastructure/cache"
	"github.com/embedtok/embedtok/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

// Writeback schedules best-effort cache writes decoupled from the request
// lifecycle. Implementations must never block the caller and must not
// surface store failures.
type Writeback interface {
	Enqueue(canonicalURL string, video *model.Video)
}

// WritebackQueueConfig holds configuration for WritebackQueue.
type WritebackQueueConfig struct {
	// QueueSize bounds the number of pending store jobs. Jobs beyond the
	// bound are dropped.
	QueueSize int
	// StoreTimeout bounds each cache write.
	StoreTimeout time.Duration
	// CacheTTL is the TTL applied to stored entries.
	CacheTTL time.Duration
}

// DefaultWritebackQueueConfig returns the default configuration.
func DefaultWritebackQueueConfig() WritebackQueueConfig {
	return WritebackQueueConfig{
		QueueSize:    128,
		StoreTimeout: 5 * time.Second,
		CacheTTL:     time.Hour,
	}
}

type storeJob struct {
	id    uuid.UUID
	key   string
	video *model.Video
}

// WritebackQueue is a bounded in-process queue draining cache store jobs on
// a background goroutine. The response that produced a job is returned to
// the client before the store completes.
type WritebackQueue struct {
	cache        cache.EmbedCache
	jobs         chan storeJob
	done         chan struct{}
	storeTimeout time.Duration
	cacheTTL     time.Duration
}

// NewWritebackQueue creates a WritebackQueue and starts its worker.
func NewWritebackQueue(embedCache cache.EmbedCache, cfg WritebackQueueConfig) *WritebackQueue {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultWritebackQueueConfig().QueueSize
	}
	q := &WritebackQueue{
		cache:        embedCache,
		jobs:         make(chan storeJob, cfg.QueueSize),
		done:         make(chan struct{}),
		storeTimeout: cfg.StoreTimeout,
		cacheTTL:     cfg.CacheTTL,
	}
	go q.run()
	return q
}

// Enqueue schedules a cache write for the video. It never blocks; when the
// queue is full the job is dropped and the entry is simply not cached.
func (q *WritebackQueue) Enqueue(canonicalURL string, video *model.Video) {
	job := storeJob{id: uuid.New(), key: canonicalURL, video: video}
	select {
	case q.jobs <- job:
	default:
		metrics.WritebackJobsTotal.WithLabelValues(metrics.WritebackStatusDropped).Inc()
		slog.Warn("writeback queue full, dropping cache store",
			"job_id", job.id,
			"canonical_url", canonicalURL,
		)
	}
}

// Close stops accepting jobs and waits for pending writes to drain.
func (q *WritebackQueue) Close() {
	close(q.jobs)
	<-q.done
}

func (q *WritebackQueue) run() {
	defer close(q.done)
	for job := range q.jobs {
		q.store(job)
	}
}

func (q *WritebackQueue) store(job storeJob) {
	ctx, cancel := context.WithTimeout(context.Background(), q.storeTimeout)
	defer cancel()

	if err := q.cache.Set(ctx, job.key, job.video, q.cacheTTL); err != nil {
		metrics.WritebackJobsTotal.WithLabelValues(metrics.WritebackStatusError).Inc()
		slog.Warn("failed to cache video",
			"job_id", job.id,
			"canonical_url", job.key,
			"error", err,
		)
		return
	}
	metrics.WritebackJobsTotal.WithLabelValues(metrics.WritebackStatusSuccess).Inc()
}
