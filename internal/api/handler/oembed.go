package handler

import "net/http"

const (
	providerName = "EmbedTok"
	providerURL  = "https://github.com/embedtok/embedtok"
)

type OembedResponse struct {
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Version      string `json:"version"`
}

// Oembed handles GET /owoembed
//
// It echoes the query parameters supplied by the discovery link that the
// HTML renderer emits; no cache lookup or upstream call is involved. The
// stats line is surfaced as the title so chat clients display it under the
// player.
func Oembed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	title := q.Get("stats")
	if title == "" {
		title = "TikTok"
	}

	JSON(w, http.StatusOK, OembedResponse{
		AuthorName:   q.Get("text"),
		AuthorURL:    q.Get("url"),
		ProviderName: providerName,
		ProviderURL:  providerURL,
		Title:        title,
		Type:         "link",
		Version:      "1.0",
	})
}
