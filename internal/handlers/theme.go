package handlers

import (
	"net/http"
	"strings"

	"github.com/rizzcalc/rizz-web/internal/settings"
)

// ToggleTheme flips the vintage theme cookie and returns to the page the
// toggle was pressed on.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)
	vintage := !settings.ThemeFromRequest(r)
	settings.SetThemeCookie(w, vintage)

	back := r.FormValue("return")
	// Form targets have no page to return to
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") ||
		strings.HasPrefix(back, "/upload") || strings.HasPrefix(back, "/analyze") {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
