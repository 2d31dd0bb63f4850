// Package intake validates chat screenshots before they are uploaded.
package intake

import (
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// MaxScreenshotBytes caps a single screenshot upload.
const MaxScreenshotBytes = 5 * 1024 * 1024

// ValidationError is a rejection with a message fit for a notification.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmpty    = &ValidationError{Title: "No file", Message: "Please choose a screenshot to upload"}
	ErrNotImage = &ValidationError{Title: "Invalid file type", Message: "Please upload an image file"}
	ErrTooLarge = &ValidationError{Title: "File too large", Message: "Please upload an image smaller than 5MB"}
)

// Screenshot is a validated file ready for upload.
type Screenshot struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validator checks screenshots against a size limit.
type Validator struct {
	MaxBytes int64
}

// NewValidator returns a validator with the given limit. Non-positive
// limits fall back to MaxScreenshotBytes.
func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = MaxScreenshotBytes
	}
	return &Validator{MaxBytes: maxBytes}
}

// Validate rejects anything that is not an image or is over the limit.
// Both the declared content type and the sniffed type must be image/*.
func (v *Validator) Validate(filename, declaredType string, data []byte) (*Screenshot, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if declaredType != "" && !isImage(declaredType) {
		return nil, ErrNotImage
	}
	detected := mimetype.Detect(data)
	if !isImage(detected.String()) {
		return nil, ErrNotImage
	}
	if int64(len(data)) > v.MaxBytes {
		return nil, ErrTooLarge
	}

	contentType := declaredType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detected.String()
	}
	// Strip parameters such as "; charset=binary"
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return &Screenshot{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// PreviewDataURL renders the screenshot as an inline data URL.
func (s *Screenshot) PreviewDataURL() string {
	return "data:" + s.ContentType + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// Selection holds the pending screenshot. A rejected file never replaces
// the current one.
type Selection struct {
	validator *Validator
	mu        sync.Mutex
	current   *Screenshot
}

func NewSelection(v *Validator) *Selection {
	return &Selection{validator: v}
}

// Select validates the file and, on success, makes it the pending one.
func (s *Selection) Select(filename, declaredType string, data []byte) (*Screenshot, error) {
	shot, err := s.validator.Validate(filename, declaredType, data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = shot
	s.mu.Unlock()
	return shot, nil
}

// Current returns the pending screenshot, or nil.
func (s *Selection) Current() *Screenshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear drops the pending screenshot.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
