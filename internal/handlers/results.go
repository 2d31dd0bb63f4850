package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rizzcalc/rizz-web/internal/models"
	"github.com/rizzcalc/rizz-web/internal/results"
	"github.com/rizzcalc/rizz-web/internal/share"
)

// RadarSkills are the radar chart axes, clockwise from the top.
var RadarSkills = []string{"Confidence", "Wit", "Personal", "Vibe", "Original"}

const (
	radarCenter = 110.0
	radarRadius = 80.0
	radarRings  = 4
)

type radarAxis struct {
	Label  string
	X, Y   float64
	LabelX float64
	LabelY float64
}

type radarChart struct {
	Axes    []radarAxis
	Rings   []string
	Polygon string
}

type resultsView struct {
	ID         string
	Result     models.AnalysisResult
	ScoreLabel string
	Badge      string
	IsW        bool
	Radar      radarChart
	MemeURL    string
	ShareLink  string
}

// Results renders a cached analysis. The page works on reload and for
// anyone holding the link until the result expires.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "resultID")
	stored, err := h.analysis.Result(r.Context(), id)
	if err != nil {
		if !errors.Is(err, results.ErrNotFound) {
			h.logger.Errorw("Failed to load result", "id", id, "error", err)
		}
		h.render(w, r, http.StatusNotFound, "notfound", "Result not found", map[string]string{
			"Path":    r.URL.Path,
			"Message": "This result has expired. Upload your screenshot again to get a fresh verdict.",
		})
		return
	}

	res := stored.Result
	view := resultsView{
		ID:         stored.ID,
		Result:     res,
		ScoreLabel: fmt.Sprintf("%d/100", res.Score),
		Badge:      "L RIZZ",
		IsW:        res.IsW(),
		Radar:      buildRadar(res.Score),
	}
	if view.IsW {
		view.Badge = "W RIZZ"
	}
	if res.MemeURL != "" {
		view.MemeURL = share.NormalizeMemeURL(res.MemeURL)
		view.ShareLink = share.Link(h.origin(r), res.MemeURL)
	}

	h.render(w, r, http.StatusOK, "results", "Your Rizz Report", view)
}

// buildRadar plots every skill at the overall score. The backend reports a
// single score, so the chart has the shape of the verdict, not a breakdown.
func buildRadar(score int) radarChart {
	value := float64(score) / 100
	n := len(RadarSkills)
	chart := radarChart{Axes: make([]radarAxis, 0, n)}

	points := make([]string, 0, n)
	for i, label := range RadarSkills {
		x, y := radarPoint(i, n, 1)
		lx, ly := radarPoint(i, n, 1.2)
		chart.Axes = append(chart.Axes, radarAxis{Label: label, X: x, Y: y, LabelX: lx, LabelY: ly})

		px, py := radarPoint(i, n, value)
		points = append(points, fmt.Sprintf("%.1f,%.1f", px, py))
	}
	chart.Polygon = strings.Join(points, " ")

	for ring := 1; ring <= radarRings; ring++ {
		scale := float64(ring) / radarRings
		ringPoints := make([]string, 0, n)
		for i := 0; i < n; i++ {
			x, y := radarPoint(i, n, scale)
			ringPoints = append(ringPoints, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		chart.Rings = append(chart.Rings, strings.Join(ringPoints, " "))
	}
	return chart
}

func radarPoint(i, n int, scale float64) (float64, float64) {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	return radarCenter + radarRadius*scale*math.Cos(angle), radarCenter + radarRadius*scale*math.Sin(angle)
}
