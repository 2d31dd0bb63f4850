package intake

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// minimal PNG header followed by padding
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, make([]byte, 64)...)

func TestValidate(t *testing.T) {
	v := NewValidator(0)

	tests := []struct {
		name     string
		declared string
		data     []byte
		wantErr  error
	}{
		{
			name:     "PNG accepted",
			declared: "image/png",
			data:     pngBytes,
		},
		{
			name:     "Undeclared PNG accepted by sniffing",
			declared: "",
			data:     pngBytes,
		},
		{
			name:     "Text declared as text",
			declared: "text/plain",
			data:     []byte("hello there"),
			wantErr:  ErrNotImage,
		},
		{
			name:     "Text declared as image",
			declared: "image/png",
			data:     []byte("definitely not a png"),
			wantErr:  ErrNotImage,
		},
		{
			name:     "Empty file",
			declared: "image/png",
			data:     nil,
			wantErr:  ErrEmpty,
		},
		{
			name:     "Over the limit",
			declared: "image/png",
			data:     append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, MaxScreenshotBytes)...),
			wantErr:  ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shot, err := v.Validate("chat.png", tt.declared, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if shot != nil {
					t.Error("expected nil screenshot on rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if shot.ContentType != "image/png" {
				t.Errorf("ContentType = %q, want image/png", shot.ContentType)
			}
		})
	}
}

func TestValidate_ExactlyAtLimit(t *testing.T) {
	v := NewValidator(int64(len(pngBytes)))
	if _, err := v.Validate("chat.png", "image/png", pngBytes); err != nil {
		t.Fatalf("file at the limit should pass, got %v", err)
	}
}

func TestSelection_RejectionKeepsPrior(t *testing.T) {
	sel := NewSelection(NewValidator(0))

	first, err := sel.Select("first.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if _, err := sel.Select("notes.txt", "text/plain", []byte("hi")); err == nil {
		t.Fatal("expected text file to be rejected")
	}
	if got := sel.Current(); got != first {
		t.Errorf("Current() = %v, want prior selection kept", got)
	}

	second, err := sel.Select("second.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Current() != second {
		t.Error("a valid second selection should replace the first")
	}

	sel.Clear()
	if sel.Current() != nil {
		t.Error("Clear() should drop the pending file")
	}
}

func TestPreviewDataURL(t *testing.T) {
	shot := &Screenshot{ContentType: "image/png", Data: []byte{1, 2, 3}}
	got := shot.PreviewDataURL()
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("PreviewDataURL() = %q", got)
	}
	if !strings.HasSuffix(got, "AQID") {
		t.Errorf("PreviewDataURL() = %q, want base64 payload AQID", got)
	}
}

func TestAsValidationError(t *testing.T) {
	ve, ok := AsValidationError(ErrTooLarge)
	if !ok || ve.Title != "File too large" {
		t.Errorf("AsValidationError() = %v, %v", ve, ok)
	}
	if _, ok := AsValidationError(errors.New("boom")); ok {
		t.Error("plain errors are not validation errors")
	}
}
