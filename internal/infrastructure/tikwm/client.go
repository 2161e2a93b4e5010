// Package tikwm implements the metadata provider client backed by the
// tikwm.com video-info API.
package tikwm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/embedtok/embedtok/internal/domain/model"
	"github.com/embedtok/embedtok/internal/domain/repository"
	"github.com/embedtok/embedtok/internal/infrastructure/metrics"
)

const (
	// DefaultAPIURL is the provider's video-info endpoint.
	DefaultAPIURL = "https://www.tikwm.com/api/"

	// DefaultCDNBaseURL is the provider's CDN host. Media paths in API
	// responses are relative to it; this differs from the platform's own
	// CDN.
	DefaultCDNBaseURL = "https://www.tikwm.com"
)

// ClientConfig holds configuration for the tikwm client.
type ClientConfig struct {
	// APIURL is the video-info endpoint.
	APIURL string
	// CDNBaseURL is the host that relative media paths are rewritten
	// against.
	CDNBaseURL string
	// Timeout bounds each API call.
	Timeout time.Duration
}

// DefaultClientConfig returns the default configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIURL:     DefaultAPIURL,
		CDNBaseURL: DefaultCDNBaseURL,
		Timeout:    10 * time.Second,
	}
}

// Client calls the tikwm video-info API and maps its raw response into the
// domain model. It implements repository.MetadataProvider.
type Client struct {
	httpClient *http.Client
	apiURL     string
	cdnBaseURL string
}

// NewClient creates a new tikwm API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.CDNBaseURL == "" {
		cfg.CDNBaseURL = DefaultCDNBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiURL:     cfg.APIURL,
		cdnBaseURL: cfg.CDNBaseURL,
	}
}

// apiResponse is the raw envelope returned by the video-info endpoint.
// A non-zero code signals an application error (rate limit, invalid URL)
// even when the HTTP status is 200.
type apiResponse struct {
	Code int     `json:"code"`
	Msg  string  `json:"msg"`
	Data apiData `json:"data"`
}

type apiData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DiggCount int64  `json:"digg_count"`
	Comments  int64  `json:"comment_count"`
	Shares    int64  `json:"share_count"`
	Plays     int64  `json:"play_count"`
	HDPlay    string `json:"hdplay"`
	Music     string `json:"music"`
	Author    struct {
		ID       string `json:"id"`
		UniqueID string `json:"unique_id"`
		Nickname string `json:"nickname"`
		Avatar   string `json:"avatar"`
	} `json:"author"`
	MusicInfo struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
	} `json:"music_info"`
}

// Fetch retrieves metadata for the post at the given canonical path.
func (c *Client) Fetch(ctx context.Context, canonicalPath string) (*model.Video, error) {
	form := url.Values{
		"url":    {"https://www.tiktok.com" + canonicalPath},
		"count":  {"12"},
		"cursor": {"0"},
		"web":    {"1"},
		"hd":     {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: status %s", repository.ErrUpstreamUnavailable, resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: decode response: %v", repository.ErrUpstreamUnavailable, err)
	}

	if body.Code != 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamStatusRateLimited).Inc()
		return nil, fmt.Errorf("%w: code %d: %s", repository.ErrUpstreamRateLimited, body.Code, body.Msg)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamStatusOK).Inc()
	return c.toVideo(body.Data), nil
}

func (c *Client) toVideo(d apiData) *model.Video {
	return &model.Video{
		ID:           d.ID,
		Description:  d.Title,
		LikeCount:    d.DiggCount,
		CommentCount: d.Comments,
		ShareCount:   d.Shares,
		ViewCount:    d.Plays,
		Author: model.Creator{
			ID:        d.Author.ID,
			Username:  d.Author.UniqueID,
			Nickname:  d.Author.Nickname,
			AvatarURL: c.absoluteCDNURL(d.Author.Avatar),
		},
		Music: model.Track{
			ID:          d.MusicInfo.ID,
			Title:       d.MusicInfo.Title,
			CreatorName: d.MusicInfo.Author,
			PlayURL:     c.absoluteCDNURL(d.Music),
		},
		PlayURL: c.absoluteCDNURL(d.HDPlay),
	}
}

// absoluteCDNURL rewrites path-only media values against the provider's CDN
// host. Already absolute URLs pass through unchanged.
func (c *Client) absoluteCDNURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		return c.cdnBaseURL + "/" + raw
	}
	return c.cdnBaseURL + raw
}
