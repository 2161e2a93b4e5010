// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "embedtok"

var (
	// CacheOperationsTotal tracks embed cache operations.
	// Labels:
	//   - operation: get, set
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of embed cache operations",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestsTotal tracks calls to the metadata API.
	// Labels:
	//   - status: ok, error, rate_limited
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of metadata API requests",
		},
		[]string{"status"},
	)

	// CrawlerDecisionsTotal tracks bot gate outcomes.
	// Labels:
	//   - decision: crawler, human, api
	CrawlerDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crawler_decisions_total",
			Help:      "Total number of crawler gate decisions",
		},
		[]string{"decision"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on cold keys.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// WritebackJobsTotal tracks background cache writes.
	// Labels:
	//   - status: success, error, dropped
	WritebackJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writeback_jobs_total",
			Help:      "Total number of background cache write jobs",
		},
		[]string{"status"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet = "get"
	CacheOpSet = "set"
)

// Upstream request status constants.
const (
	UpstreamStatusOK          = "ok"
	UpstreamStatusError       = "error"
	UpstreamStatusRateLimited = "rate_limited"
)

// Crawler gate decision constants.
const (
	CrawlerDecisionCrawler = "crawler"
	CrawlerDecisionHuman   = "human"
	CrawlerDecisionAPI     = "api"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Writeback job status constants.
const (
	WritebackStatusSuccess = "success"
	WritebackStatusError   = "error"
	WritebackStatusDropped = "dropped"
)
