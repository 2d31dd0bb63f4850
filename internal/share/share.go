// Package share builds the canonical shareable link for a meme image.
package share

import (
	"net/url"
	"strings"
)

// SharePath is the route that renders a meme from its url query parameter.
const SharePath = "/share"

// NormalizeMemeURL forces https on http URLs, keeping path and query.
// Anything that does not parse as an absolute URL is returned unchanged.
func NormalizeMemeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	if strings.EqualFold(u.Scheme, "http") {
		u.Scheme = "https"
	}
	return u.String()
}

// Link returns <origin>/share?url=<escaped meme URL>. An empty meme URL
// yields an empty link.
func Link(origin, memeURL string) string {
	if memeURL == "" {
		return ""
	}
	q := url.Values{}
	q.Set("url", NormalizeMemeURL(memeURL))
	return strings.TrimRight(origin, "/") + SharePath + "?" + q.Encode()
}

// FromQuery extracts and normalizes the meme URL a share page should
// display. ok is false when the link carries no URL.
func FromQuery(values url.Values) (memeURL string, ok bool) {
	raw := strings.TrimSpace(values.Get("url"))
	if raw == "" {
		return "", false
	}
	// Links built by older clients double-encoded the parameter
	if decoded, err := url.QueryUnescape(raw); err == nil && strings.Contains(raw, "%") {
		raw = decoded
	}
	return NormalizeMemeURL(raw), true
}
