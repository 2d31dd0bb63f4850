package handlers

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rizzcalc/rizz-web/internal/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "rizz_flash"

var pageNames = []string{"intake", "loading", "results", "leaderboard", "share", "history", "notfound"}

var pages = parsePages()

var funcs = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"medal": func(rank int) string {
		medals := []string{"🥇", "🥈", "🥉"}
		if rank >= 1 && rank <= len(medals) {
			return medals[rank-1]
		}
		return ""
	},
}

func parsePages() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		out[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// flash is a one-shot notification carried across a redirect
type flash struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Error   bool   `json:"error"`
}

type pageData struct {
	Title   string
	Path    string
	Vintage bool
	Flashes []*flash
	Data    interface{}
}

// render executes a page into a buffer so template errors never produce a
// half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	h.renderNotice(w, r, status, name, title, data, nil)
}

// renderNotice is render with a notification raised by this request. It is
// shown after any notification carried in by a redirect.
func (h *Handler) renderNotice(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}, notice *flash) {
	tmpl, ok := pages[name]
	if !ok {
		h.logger.Errorw("Unknown page", "page", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:   title,
		Path:    r.URL.RequestURI(),
		Vintage: settings.ThemeFromRequest(r),
		Data:    data,
	}
	if carried := h.takeFlash(w, r); carried != nil {
		pd.Flashes = append(pd.Flashes, carried)
	}
	if notice != nil {
		pd.Flashes = append(pd.Flashes, notice)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pd); err != nil {
		h.logger.Errorw("Template error", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) setFlash(w http.ResponseWriter, f flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) takeFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

// redirectWithError notifies the user and sends them back to the intake page
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, title, message string) {
	h.setFlash(w, flash{Title: title, Message: message, Error: true})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// origin returns the share link origin for this request
func (h *Handler) origin(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
