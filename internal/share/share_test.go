package share

import (
	"net/url"
	"strings"
	"testing"
)

func TestNormalizeMemeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x/m.png", "https://x/m.png"},
		{"HTTP://cdn.example.com/a/b.png?size=large&v=2", "https://cdn.example.com/a/b.png?size=large&v=2"},
		{"https://x/m.png", "https://x/m.png"},
		{"http://storage.example.com/memes/id%20one.png?token=abc", "https://storage.example.com/memes/id%20one.png?token=abc"},
		{"not a url", "not a url"},
		{"/relative/meme.png", "/relative/meme.png"},
		{"http://[::1", "http://[::1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeMemeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeMemeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	got := Link("https://rizz.example.com/", "http://x/m.png")
	want := "https://rizz.example.com/share?url=" + url.QueryEscape("https://x/m.png")
	if got != want {
		t.Errorf("Link() = %q, want %q", got, want)
	}
	if !strings.Contains(got, "https%3A%2F%2Fx%2Fm.png") {
		t.Errorf("Link() = %q, want URL-encoded https meme URL", got)
	}
}

func TestLink_Unparseable(t *testing.T) {
	got := Link("", "not a url")
	if got != "/share?url=not+a+url" {
		t.Errorf("Link() = %q", got)
	}
}

func TestLink_Empty(t *testing.T) {
	if got := Link("https://rizz.example.com", ""); got != "" {
		t.Errorf("Link() = %q, want empty", got)
	}
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{"Plain", "url=" + url.QueryEscape("http://x/m.png"), "https://x/m.png", true},
		{"Double encoded", "url=" + url.QueryEscape(url.QueryEscape("http://x/m.png")), "https://x/m.png", true},
		{"Missing", "", "", false},
		{"Blank", "url=%20", "", false},
		{"Garbage", "url=hello", "hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, ok := FromQuery(values)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromQuery(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
