package model

import (
	"strings"
	"testing"
)

func testVideo() *Video {
	return &Video{
		ID:           "7123456789012345678",
		Description:  "a cat doing cat things",
		LikeCount:    1200,
		CommentCount: 45,
		ShareCount:   9,
		ViewCount:    56000,
		Author: Creator{
			ID:       "101",
			Username: "alice",
			Nickname: "Alice",
		},
	}
}

func TestVideo_CanonicalPath(t *testing.T) {
	v := testVideo()
	if got, want := v.CanonicalPath(), "/@alice/video/7123456789012345678"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
}

func TestVideo_SourceURL(t *testing.T) {
	v := testVideo()
	if got, want := v.SourceURL(), "https://tiktok.com/@alice/video/7123456789012345678"; got != want {
		t.Errorf("SourceURL() = %q, want %q", got, want)
	}
}

func TestVideo_StatsLine(t *testing.T) {
	v := testVideo()
	if got, want := v.StatsLine(), "1200 ❤️ 45 💬 9 🔁 56000 👁️"; got != want {
		t.Errorf("StatsLine() = %q, want %q", got, want)
	}
}

func TestVideo_DisplayTitle(t *testing.T) {
	v := testVideo()
	if got, want := v.DisplayTitle(), "Alice (@alice)"; got != want {
		t.Errorf("DisplayTitle() = %q, want %q", got, want)
	}
}

func TestVideo_ShortDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "short description unchanged",
			description: "hello",
			want:        "hello",
		},
		{
			name:        "exactly 250 runes unchanged",
			description: strings.Repeat("a", 250),
			want:        strings.Repeat("a", 250),
		},
		{
			name:        "251 runes truncated",
			description: strings.Repeat("a", 251),
			want:        strings.Repeat("a", 250) + "...",
		},
		{
			name:        "300 runes truncated to 250 plus marker",
			description: strings.Repeat("b", 300),
			want:        strings.Repeat("b", 250) + "...",
		},
		{
			name:        "multibyte runes counted as runes not bytes",
			description: strings.Repeat("猫", 300),
			want:        strings.Repeat("猫", 250) + "...",
		},
		{
			name:        "empty description",
			description: "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Video{Description: tt.description}
			if got := v.ShortDescription(); got != tt.want {
				t.Errorf("ShortDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
