package crawler

import "testing"

func TestIsCrawler(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{
			name:      "telegram preview fetcher",
			userAgent: "TelegramBot (like TwitterBot)",
			want:      true,
		},
		{
			name:      "discord preview fetcher",
			userAgent: "Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)",
			want:      true,
		},
		{
			name:      "facebook external hit",
			userAgent: "facebookexternalhit/1.1",
			want:      true,
		},
		{
			name:      "whatsapp",
			userAgent: "WhatsApp/2.23.2.72 A",
			want:      true,
		},
		{
			name:      "revolt via firefox 92 engine",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:92.0) Gecko/20100101 Firefox/92.0",
			want:      true,
		},
		{
			name:      "generic preview fetcher",
			userAgent: "SomeChatApp-LinkPreview/1.0",
			want:      true,
		},
		{
			name:      "regular chrome browser",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want:      false,
		},
		{
			name:      "current firefox",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want:      false,
		},
		{
			name:      "empty user agent",
			userAgent: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCrawler(tt.userAgent); got != tt.want {
				t.Errorf("IsCrawler(%q) = %v, want %v", tt.userAgent, got, tt.want)
			}
		})
	}
}
