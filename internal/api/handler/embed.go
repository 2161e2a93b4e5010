package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/embedtok/embedtok/internal/api/middleware"
	"github.com/embedtok/embedtok/internal/crawler"
	"github.com/embedtok/embedtok/internal/domain/model"
	"github.com/embedtok/embedtok/internal/domain/repository"
	"github.com/embedtok/embedtok/internal/infrastructure/metrics"
	"github.com/embedtok/embedtok/internal/usecase"
)

// Response types

type VideoResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	LikeCount    int64           `json:"likeCount"`
	CommentCount int64           `json:"commentCount"`
	ShareCount   int64           `json:"shareCount"`
	ViewCount    int64           `json:"viewCount"`
	User         CreatorResponse `json:"user"`
	Music        TrackResponse   `json:"music"`
	PlayURL      string          `json:"playUrl"`
}

type CreatorResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

type TrackResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatorName string `json:"creatorName"`
	PlayURL     string `json:"playUrl"`
}

// URLResolver normalizes an inbound host and path to a canonical post path.
type URLResolver interface {
	Resolve(ctx context.Context, host, path string) (string, error)
}

// EmbedHandlerConfig holds configuration for EmbedHandler.
type EmbedHandlerConfig struct {
	// FallbackURL receives redirects for requests that resolve to nothing.
	FallbackURL string
	// SourceBaseURL is the original platform origin humans are sent to.
	SourceBaseURL string
}

// DefaultEmbedHandlerConfig returns the default configuration.
func DefaultEmbedHandlerConfig() EmbedHandlerConfig {
	return EmbedHandlerConfig{
		FallbackURL:   providerURL,
		SourceBaseURL: "https://tiktok.com",
	}
}

// EmbedHandler serves the video paths: it resolves the inbound URL, gates
// crawlers from humans, and renders the preview as HTML or JSON.
type EmbedHandler struct {
	svc           usecase.EmbedService
	resolver      URLResolver
	fallbackURL   string
	sourceBaseURL string
}

// NewEmbedHandler creates a new EmbedHandler.
func NewEmbedHandler(svc usecase.EmbedService, res URLResolver, cfg EmbedHandlerConfig) *EmbedHandler {
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = providerURL
	}
	if cfg.SourceBaseURL == "" {
		cfg.SourceBaseURL = "https://tiktok.com"
	}
	return &EmbedHandler{
		svc:           svc,
		resolver:      res,
		fallbackURL:   cfg.FallbackURL,
		sourceBaseURL: cfg.SourceBaseURL,
	}
}

// Serve handles every path that is not a fixed route: canonical post paths,
// their /api/ variants, and short-link paths.
func (h *EmbedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	path := r.URL.Path
	apiMode := strings.HasPrefix(path, "/api/")
	if apiMode {
		path = strings.TrimPrefix(path, "/api")
	}

	canonicalPath, err := h.resolver.Resolve(ctx, r.Host, path)
	if err != nil {
		// Unresolvable short links are recovered into a redirect to
		// the project page, never surfaced as errors.
		if !errors.Is(err, repository.ErrUnresolvableURL) {
			slog.Warn("short-link resolution failed",
				"request_id", middleware.GetRequestID(ctx),
				"path", path,
				"error", err,
			)
		}
		Redirect(w, h.fallbackURL)
		return
	}
	if canonicalPath == "" {
		Redirect(w, h.fallbackURL)
		return
	}

	// Humans never trigger a metadata fetch; they go straight to the
	// source unless they asked for the API representation.
	if !apiMode && !crawler.IsCrawler(r.UserAgent()) {
		metrics.CrawlerDecisionsTotal.WithLabelValues(metrics.CrawlerDecisionHuman).Inc()
		Redirect(w, h.sourceBaseURL+canonicalPath)
		return
	}
	if apiMode {
		metrics.CrawlerDecisionsTotal.WithLabelValues(metrics.CrawlerDecisionAPI).Inc()
	} else {
		metrics.CrawlerDecisionsTotal.WithLabelValues(metrics.CrawlerDecisionCrawler).Inc()
	}

	video, err := h.svc.GetEmbed(ctx, canonicalURL(r.Host, canonicalPath), canonicalPath)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if apiMode {
		JSON(w, http.StatusOK, toVideoResponse(video))
		return
	}
	HTML(w, http.StatusOK, renderEmbedHTML(video, r.Host))
}

func (h *EmbedHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("embed resolution failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	switch {
	case errors.Is(err, repository.ErrUpstreamRateLimited):
		Error(w, http.StatusTooManyRequests, "upstream_rate_limited", "The metadata provider is rate limiting requests, try again shortly")
	case errors.Is(err, repository.ErrUpstreamUnavailable):
		Error(w, http.StatusBadGateway, "upstream_unavailable", "The metadata provider could not be reached")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// canonicalURL builds the cache key: scheme + host + canonical path, with
// the query stripped. The service is only reachable over TLS.
func canonicalURL(host, canonicalPath string) string {
	return "https://" + host + canonicalPath
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		Description:  v.Description,
		LikeCount:    v.LikeCount,
		CommentCount: v.CommentCount,
		ShareCount:   v.ShareCount,
		ViewCount:    v.ViewCount,
		User: CreatorResponse{
			ID:        v.Author.ID,
			Username:  v.Author.Username,
			Nickname:  v.Author.Nickname,
			AvatarURL: v.Author.AvatarURL,
		},
		Music: TrackResponse{
			ID:          v.Music.ID,
			Title:       v.Music.Title,
			CreatorName: v.Music.CreatorName,
			PlayURL:     v.Music.PlayURL,
		},
		PlayURL: v.PlayURL,
	}
}
