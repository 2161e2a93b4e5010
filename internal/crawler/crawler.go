// Package crawler classifies inbound clients as preview-fetching crawlers
// or ordinary browsers.
package crawler

import "strings"

// signatures are User-Agent fragments of known link-preview fetchers.
// firefox/92 is the engine Revolt uses for its preview fetcher.
var signatures = []string{
	"discordbot",
	"telegrambot",
	"facebook",
	"whatsapp",
	"firefox/92",
	"vkshare",
	"revoltchat",
	"preview",
}

// IsCrawler reports whether the User-Agent belongs to a known
// preview-fetching crawler. Matching is by case-insensitive substring;
// an empty User-Agent is never a crawler.
func IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, s := range signatures {
		if strings.Contains(ua, s) {
			return true
		}
	}
	return false
}
