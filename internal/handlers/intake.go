package handlers

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rizzcalc/rizz-web/internal/intake"
	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/worker"
)

type intakeView struct {
	ImageURL    string
	Preview     template.URL
	Nickname    string
	CanAnalyze  bool
	MaxNickname int
}

func newIntakeView(imageURL, preview, nickname string) intakeView {
	if preview == "" {
		preview = imageURL
	}
	return intakeView{
		ImageURL:    imageURL,
		Preview:     template.URL(preview),
		Nickname:    nickname,
		CanAnalyze:  logic.CanAnalyze(imageURL, nickname),
		MaxNickname: logic.MaxNicknameLength,
	}
}

// Index renders the intake page. A previously hosted screenshot and the
// nickname survive a rejected upload through the query string.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	imageURL := strings.TrimSpace(q.Get("image_url"))
	if imageURL != "" && !isHTTPURL(imageURL) {
		imageURL = ""
	}
	nickname := logic.NormalizeNickname(q.Get("nickname"))
	h.render(w, r, http.StatusOK, "intake", "Rizz Calculator", newIntakeView(imageURL, "", nickname))
}

// uploadForm holds the multipart fields of an upload. The small fields are
// kept even when the file part is rejected.
type uploadForm struct {
	imageURL    string
	nickname    string
	filename    string
	contentType string
	data        []byte
	hasFile     bool
}

// maxFieldBytes caps the text fields of the upload form
const maxFieldBytes = 4 << 10

// Upload validates the screenshot and hosts it on the scoring backend.
// The body is streamed part by part so an oversize file never costs the
// image_url and nickname fields that precede it.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	form, err := h.readUpload(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, intake.ErrTooLarge), errors.As(err, &tooBig):
			h.rejectUpload(w, r, form, intake.ErrTooLarge.Title, intake.ErrTooLarge.Message)
		default:
			h.logger.Warnw("Failed to read upload", "error", err)
			h.rejectUpload(w, r, form, "Upload failed", "Could not read the uploaded file")
		}
		return
	}
	if !form.hasFile {
		h.rejectUpload(w, r, form, intake.ErrEmpty.Title, intake.ErrEmpty.Message)
		return
	}

	outcome, err := h.analysis.Upload(r.Context(), form.filename, form.contentType, form.data)
	if err != nil {
		if ve, ok := intake.AsValidationError(err); ok {
			h.rejectUpload(w, r, form, ve.Title, ve.Message)
			return
		}
		h.logger.Warnw("Failed to host screenshot", "error", err)
		h.rejectUpload(w, r, form, "Upload failed", "Could not upload the screenshot, please try again")
		return
	}

	h.render(w, r, http.StatusOK, "intake", "Rizz Calculator", newIntakeView(outcome.ImageURL, outcome.Preview, form.nickname))
}

// readUpload walks the multipart stream. It returns the fields read so far
// alongside any error.
func (h *Handler) readUpload(r *http.Request) (uploadForm, error) {
	var form uploadForm
	mr, err := r.MultipartReader()
	if err != nil {
		return form, err
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return form, nil
		}
		if err != nil {
			return form, err
		}

		switch part.FormName() {
		case "image_url", "nickname":
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return form, err
			}
			if part.FormName() == "image_url" {
				form.imageURL = strings.TrimSpace(string(value))
			} else {
				form.nickname = logic.NormalizeNickname(string(value))
			}
		case "file":
			if part.FileName() == "" {
				continue
			}
			data, err := io.ReadAll(io.LimitReader(part, h.maxUploadBytes+1))
			if err != nil {
				return form, err
			}
			if int64(len(data)) > h.maxUploadBytes {
				return form, intake.ErrTooLarge
			}
			form.hasFile = len(data) > 0
			form.filename = part.FileName()
			form.contentType = part.Header.Get("Content-Type")
			form.data = data
		}
		part.Close()
	}
}

// rejectUpload keeps the prior selection and nickname and returns to intake
func (h *Handler) rejectUpload(w http.ResponseWriter, r *http.Request, form uploadForm, title, message string) {
	h.setFlash(w, flash{Title: title, Message: message, Error: true})

	q := url.Values{}
	if form.imageURL != "" && isHTTPURL(form.imageURL) {
		q.Set("image_url", form.imageURL)
	}
	if form.nickname != "" {
		q.Set("nickname", form.nickname)
	}
	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Analyze queues the scoring call and sends the user to the loading page.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, multipartOverhead)
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	nickname := logic.NormalizeNickname(r.FormValue("nickname"))

	if !logic.CanAnalyze(imageURL, nickname) {
		h.redirectWithError(w, r, "Missing info", "Please upload a screenshot and enter a nickname")
		return
	}

	jobID, err := h.queue.Enqueue(imageURL, nickname)
	if err != nil {
		h.logger.Warnw("Failed to queue analysis", "nickname", nickname, "error", err)
		if errors.Is(err, worker.ErrQueueFull) {
			h.redirectWithError(w, r, "Busy", "Too many people are getting judged right now, try again in a moment")
			return
		}
		h.redirectWithError(w, r, "Analysis failed", "The analyzer is shutting down, please try again")
		return
	}

	http.Redirect(w, r, "/loading/"+jobID, http.StatusSeeOther)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
