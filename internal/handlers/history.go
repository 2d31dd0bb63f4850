package handlers

import (
	"net/http"
	"strconv"

	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/models"
)

type historyView struct {
	Enabled  bool
	Nickname string
	Records  []historyRow
}

type historyRow struct {
	models.HistoryRecord
	Date       string
	ScoreLabel string
	IsW        bool
}

// History lists recent analyses for a nickname
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	nickname := logic.NormalizeNickname(r.URL.Query().Get("nickname"))
	view := historyView{Enabled: h.history.Enabled(), Nickname: nickname, Records: []historyRow{}}
	if !view.Enabled || nickname == "" {
		h.render(w, r, http.StatusOK, "history", "History", view)
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= logic.MaxHistoryLimit {
			limit = parsed
		}
	}

	records, err := h.history.Recent(r.Context(), nickname, limit)
	if err != nil {
		h.logger.Errorw("Failed to load history", "nickname", nickname, "error", err)
		h.renderNotice(w, r, http.StatusOK, "history", "History", view,
			&flash{Title: "Error", Message: "Failed to load history", Error: true})
		return
	}

	for _, rec := range records {
		view.Records = append(view.Records, historyRow{
			HistoryRecord: rec,
			Date:          rec.CreatedAt.Format("Jan 2, 2006"),
			ScoreLabel:    strconv.Itoa(rec.Score) + "/100",
			IsW:           rec.Score >= models.WinningScore,
		})
	}
	h.render(w, r, http.StatusOK, "history", "History", view)
}
