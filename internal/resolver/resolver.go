// Package resolver normalizes inbound request URLs into canonical post
// paths, following short-link redirects when necessary.
package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/embedtok/embedtok/internal/domain/repository"
)

// canonicalPathRe matches the canonical post path shape /@<handle>/video/<id>.
var canonicalPathRe = regexp.MustCompile(`^/@[^/]+/video/\d+`)

// shortLinkPrefixes are host subdomain prefixes that indicate a short-form
// redirect link. Requests arriving on such a host carry the short-link path.
var shortLinkPrefixes = []string{"vm.", "vt."}

// Config holds configuration for the resolver.
type Config struct {
	// BaseHost is the platform domain that short-link probes are issued
	// against, combined with the inbound subdomain prefix.
	BaseHost string
	// ProbeBaseURL, when set, replaces the scheme and host of probe
	// requests entirely. Used by tests and egress proxies.
	ProbeBaseURL string
	// Timeout bounds each redirect probe.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseHost: "tiktok.com",
		Timeout:  10 * time.Second,
	}
}

// Resolver normalizes inbound URLs to canonical post paths.
type Resolver struct {
	httpClient   *http.Client
	baseHost     string
	probeBaseURL string
}

// New creates a new Resolver. The probe client never follows redirects;
// the canonical path is read from the Location header instead.
func New(cfg Config) *Resolver {
	if cfg.BaseHost == "" {
		cfg.BaseHost = "tiktok.com"
	}
	return &Resolver{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseHost:     cfg.BaseHost,
		probeBaseURL: cfg.ProbeBaseURL,
	}
}

// IsCanonicalPath reports whether path already has the canonical post shape.
func IsCanonicalPath(path string) bool {
	return canonicalPathRe.MatchString(path)
}

// Resolve produces the canonical post path for an inbound request, or ""
// when the request matches neither the canonical shape nor a short link.
// host is the inbound Host header; its subdomain prefix decides whether the
// path should be probed as a short link.
func (r *Resolver) Resolve(ctx context.Context, host, path string) (string, error) {
	if IsCanonicalPath(path) {
		return path, nil
	}

	prefix := shortLinkPrefix(host)
	if prefix == "" || isStaticAsset(path) {
		return "", nil
	}

	probeURL := r.probeOrigin(prefix) + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return "", fmt.Errorf("build probe request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe short link: %w", err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("%w: %s", repository.ErrUnresolvableURL, probeURL)
	}

	target, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("%w: bad location %q", repository.ErrUnresolvableURL, location)
	}
	if !IsCanonicalPath(target.Path) {
		return "", fmt.Errorf("%w: location %q is not a post path", repository.ErrUnresolvableURL, location)
	}
	return target.Path, nil
}

func (r *Resolver) probeOrigin(prefix string) string {
	if r.probeBaseURL != "" {
		return r.probeBaseURL
	}
	return "https://" + prefix + r.baseHost
}

// shortLinkPrefix returns the matching short-link subdomain prefix of host,
// or "" when host is not a short-link host.
func shortLinkPrefix(host string) string {
	host = strings.ToLower(host)
	for _, p := range shortLinkPrefixes {
		if strings.HasPrefix(host, p) {
			return p
		}
	}
	return ""
}

// isStaticAsset filters paths that browsers request on their own and that
// are never short links.
func isStaticAsset(path string) bool {
	switch path {
	case "/favicon.ico", "/robots.txt", "/apple-touch-icon.png":
		return true
	}
	return false
}
