package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/rizzcalc/rizz-web/internal/share"
)

// Routes wires every page and API endpoint
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	// Pages
	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Post("/analyze", h.Analyze)
	r.Get("/loading/{jobID}", h.Loading)
	r.Get("/results/{resultID}", h.Results)
	r.Get("/leaderboard", h.Leaderboard)
	r.Get(share.SharePath, h.Share)
	r.Get(share.SharePath+"/{memeID}", h.Share)
	r.Get("/history", h.History)
	r.Post("/theme", h.ToggleTheme)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/jobs/{jobID}", h.GetJobStatus)
	})

	r.NotFound(h.NotFound)
	return r
}

// SwaggerDoc serves the registered OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Infow("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
