package model

import "fmt"

// maxDescriptionRunes is the rendering limit for preview descriptions.
// The stored description is never truncated; see ShortDescription.
const maxDescriptionRunes = 250

// Creator is the account that posted a video.
type Creator struct {
	ID        string
	Username  string
	Nickname  string
	AvatarURL string
}

// Track is the audio attached to a video.
type Track struct {
	ID          string
	Title       string
	CreatorName string
	PlayURL     string
}

// Video is the canonical representation of a single post, as cached and
// rendered. All URL fields are absolute and rooted at the metadata
// provider's CDN host, never the raw paths returned by the upstream API.
type Video struct {
	ID           string
	Description  string
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
	ViewCount    int64
	Author       Creator
	Music        Track
	PlayURL      string
}

// CanonicalPath returns the canonical post path for the video.
func (v *Video) CanonicalPath() string {
	return fmt.Sprintf("/@%s/video/%s", v.Author.Username, v.ID)
}

// SourceURL returns the original platform URL for the video.
func (v *Video) SourceURL() string {
	return "https://tiktok.com" + v.CanonicalPath()
}

// StatsLine renders the engagement counters as a single display string.
func (v *Video) StatsLine() string {
	return fmt.Sprintf("%d ❤️ %d 💬 %d 🔁 %d 👁️",
		v.LikeCount, v.CommentCount, v.ShareCount, v.ViewCount)
}

// ShortDescription returns the description truncated for preview meta tags.
// Descriptions of 250 runes or fewer are returned unchanged; longer ones are
// cut at 250 runes with an ellipsis marker appended.
func (v *Video) ShortDescription() string {
	runes := []rune(v.Description)
	if len(runes) <= maxDescriptionRunes {
		return v.Description
	}
	return string(runes[:maxDescriptionRunes]) + "..."
}

// DisplayTitle renders the author line used for preview titles.
func (v *Video) DisplayTitle() string {
	return fmt.Sprintf("%s (@%s)", v.Author.Nickname, v.Author.Username)
}
