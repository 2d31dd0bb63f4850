package handlers

import (
	"net/http"

	"github.com/rizzcalc/rizz-web/internal/models"
)

type leaderboardView struct {
	Entries []models.RankedEntry
}

// Leaderboard renders the ranked leaderboard. A fetch failure still
// renders the page, empty, with a notification.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.GetLeaderboard(r.Context())
	if err != nil {
		h.renderNotice(w, r, http.StatusOK, "leaderboard", "Leaderboard", leaderboardView{
			Entries: []models.RankedEntry{},
		}, &flash{Title: "Error", Message: "Failed to load leaderboard", Error: true})
		return
	}
	h.render(w, r, http.StatusOK, "leaderboard", "Leaderboard", leaderboardView{Entries: entries})
}

// GetLeaderboard returns the ranked leaderboard
// @Summary Rizz Leaderboard
// @Description Entries in backend order with rank, display labels and the top three flagged
// @Tags Leaderboards
// @Produce json
// @Success 200 {object} map[string]interface{} "Leaderboard"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /api/leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.GetLeaderboard(r.Context())
	if err != nil {
		h.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
	})
}
