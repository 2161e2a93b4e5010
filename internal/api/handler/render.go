package handler

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/embedtok/embedtok/internal/domain/model"
)

const themeColor = "#8100AB"

// metaPlaceholder is the single substitution token inside embedTemplate.
const metaPlaceholder = "{}"

// embedTemplate is the static document the meta tag block is substituted
// into. The body is never shown: crawlers read the head only and browsers
// are redirected by the refresh tag before rendering.
const embedTemplate = `<!DOCTYPE html>
<html>
<head>
{}
</head>
<body></body>
</html>
`

// renderEmbedHTML builds the preview document for a video. Pure function of
// the video and the serving host: rendering the same video twice produces
// byte-identical output.
func renderEmbedHTML(v *model.Video, host string) string {
	stats := v.StatsLine()
	title := v.DisplayTitle()
	description := v.ShortDescription()
	sourceURL := v.SourceURL()

	oembedURL := (&url.URL{
		Scheme: "https",
		Host:   host,
		Path:   "/owoembed",
		RawQuery: url.Values{
			"text":  {v.Description},
			"url":   {sourceURL},
			"stats": {stats},
		}.Encode(),
	}).String()

	metaTags := []string{
		`<meta content='text/html; charset=UTF-8' http-equiv='Content-Type' />`,
		fmt.Sprintf(`<meta name="theme-color" content="%s"/>`, themeColor),
		fmt.Sprintf(`<meta property="og:site_name" content="%s" />`, html.EscapeString(stats)),

		`<meta name="twitter:card" content="player" />`,
		fmt.Sprintf(`<meta name="twitter:title" content="%s" />`, html.EscapeString(title)),
		fmt.Sprintf(`<meta name="twitter:player:stream" content="%s" />`, html.EscapeString(v.PlayURL)),
		`<meta name="twitter:player:stream:content_type" content="video/mp4" />`,

		fmt.Sprintf(`<meta property="og:title" content="%s"/>`, html.EscapeString(title)),
		`<meta property="og:type" content="video.other"/>`,
		fmt.Sprintf(`<meta property="og:video" content="%s"/>`, html.EscapeString(v.PlayURL)),
		fmt.Sprintf(`<meta property="og:video:secure_url" content="%s"/>`, html.EscapeString(v.PlayURL)),
		`<meta property="og:video:type" content="video/mp4"/>`,

		fmt.Sprintf(`<meta property="og:description" content="%s"/>`, html.EscapeString(description)),
		fmt.Sprintf(`<meta name="twitter:description" content="%s" />`, html.EscapeString(description)),

		fmt.Sprintf(`<link rel="alternate" href="%s" type="application/json+oembed" title="%s">`,
			html.EscapeString(oembedURL), html.EscapeString(v.Author.Nickname)),
		fmt.Sprintf(`<meta http-equiv="refresh" content="0; url = %s" />`, html.EscapeString(sourceURL)),
	}

	return strings.Replace(embedTemplate, metaPlaceholder, strings.Join(metaTags, "\n"), 1)
}
