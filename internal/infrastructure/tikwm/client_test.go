package tikwm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/embedtok/embedtok/internal/domain/repository"
)

const sampleResponse = `{
	"code": 0,
	"msg": "success",
	"data": {
		"id": "7123456789012345678",
		"title": "a cat doing cat things",
		"digg_count": 1200,
		"comment_count": 45,
		"share_count": 9,
		"play_count": 56000,
		"hdplay": "/video/media/hdplay/7123456789012345678.mp4",
		"music": "/video/music/7123456789012345678.mp3",
		"author": {
			"id": "101",
			"unique_id": "alice",
			"nickname": "Alice",
			"avatar": "/avatar/alice.jpeg"
		},
		"music_info": {
			"id": "202",
			"title": "original sound",
			"author": "Alice"
		}
	}
}`

func newTestClient(upstream *httptest.Server) *Client {
	cfg := DefaultClientConfig()
	cfg.APIURL = upstream.URL
	return NewClient(cfg)
}

func TestClient_Fetch(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %s, want form encoding", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"url":    r.PostFormValue("url"),
			"count":  r.PostFormValue("count"),
			"cursor": r.PostFormValue("cursor"),
			"web":    r.PostFormValue("web"),
			"hd":     r.PostFormValue("hd"),
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	video, err := client.Fetch(context.Background(), "/@alice/video/7123456789012345678")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	wantForm := map[string]string{
		"url":    "https://www.tiktok.com/@alice/video/7123456789012345678",
		"count":  "12",
		"cursor": "0",
		"web":    "1",
		"hd":     "1",
	}
	for k, want := range wantForm {
		if gotForm[k] != want {
			t.Errorf("form[%s] = %q, want %q", k, gotForm[k], want)
		}
	}

	if video.ID != "7123456789012345678" {
		t.Errorf("ID = %q", video.ID)
	}
	if video.Description != "a cat doing cat things" {
		t.Errorf("Description = %q", video.Description)
	}
	if video.LikeCount != 1200 || video.CommentCount != 45 || video.ShareCount != 9 || video.ViewCount != 56000 {
		t.Errorf("counts = %d/%d/%d/%d", video.LikeCount, video.CommentCount, video.ShareCount, video.ViewCount)
	}
	if video.Author.Username != "alice" || video.Author.Nickname != "Alice" {
		t.Errorf("author = %+v", video.Author)
	}
	if video.Music.Title != "original sound" || video.Music.CreatorName != "Alice" {
		t.Errorf("music = %+v", video.Music)
	}
}

func TestClient_Fetch_RewritesCDNURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	video, err := client.Fetch(context.Background(), "/@alice/video/7123456789012345678")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	wantURLs := map[string]string{
		"PlayURL":       "https://www.tikwm.com/video/media/hdplay/7123456789012345678.mp4",
		"Music.PlayURL": "https://www.tikwm.com/video/music/7123456789012345678.mp3",
		"AvatarURL":     "https://www.tikwm.com/avatar/alice.jpeg",
	}
	got := map[string]string{
		"PlayURL":       video.PlayURL,
		"Music.PlayURL": video.Music.PlayURL,
		"AvatarURL":     video.Author.AvatarURL,
	}
	for k, want := range wantURLs {
		if got[k] != want {
			t.Errorf("%s = %q, want %q", k, got[k], want)
		}
	}
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Fetch(context.Background(), "/@alice/video/1")
	if !errors.Is(err, repository.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestClient_Fetch_ApplicationErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": -1, "msg": "Free Api Limit"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Fetch(context.Background(), "/@alice/video/1")
	if !errors.Is(err, repository.ErrUpstreamRateLimited) {
		t.Errorf("err = %v, want ErrUpstreamRateLimited", err)
	}
}

func TestClient_Fetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := newTestClient(srv)
	_, err := client.Fetch(context.Background(), "/@alice/video/1")
	if !errors.Is(err, repository.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestClient_absoluteCDNURL(t *testing.T) {
	client := NewClient(DefaultClientConfig())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"path only", "/avatar/a.jpeg", "https://www.tikwm.com/avatar/a.jpeg"},
		{"missing leading slash", "avatar/a.jpeg", "https://www.tikwm.com/avatar/a.jpeg"},
		{"already absolute", "https://p16-sign.tiktokcdn.com/a.jpeg", "https://p16-sign.tiktokcdn.com/a.jpeg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.absoluteCDNURL(tt.in); got != tt.want {
				t.Errorf("absoluteCDNURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
