package settings

import (
	"net/http"
	"strconv"
	"time"
)

const themeCookieMaxAge = 365 * 24 * time.Hour

// ThemeFromRequest reads the vintage preference from the request cookie.
// Absent or malformed cookies mean vintage off.
func ThemeFromRequest(r *http.Request) bool {
	c, err := r.Cookie(ThemeKey)
	if err != nil {
		return false
	}
	v, err := strconv.ParseBool(c.Value)
	if err != nil {
		return false
	}
	return v
}

// SetThemeCookie writes the preference back to the browser.
func SetThemeCookie(w http.ResponseWriter, vintage bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeKey,
		Value:    strconv.FormatBool(vintage),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
