package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rizzcalc/rizz-web/internal/share"
)

type shareView struct {
	MemeID  string
	MemeURL string
	Found   bool
}

// Share renders a meme from the url query parameter. The path ID on
// /share/{memeID} is cosmetic; the query alone decides what is shown.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	memeURL, ok := share.FromQuery(r.URL.Query())
	view := shareView{MemeID: chi.URLParam(r, "memeID"), MemeURL: memeURL, Found: ok}
	if !ok {
		h.render(w, r, http.StatusNotFound, "share", "Meme not found", view)
		return
	}
	h.render(w, r, http.StatusOK, "share", "Check out my rizz", view)
}
