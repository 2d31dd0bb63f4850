package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Logger: zap.NewNop()})
}

func TestUploadScreenshot(t *testing.T) {
	var gotName, gotType string
	var gotData []byte

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload_screenshot/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)
		json.NewEncoder(w).Encode(map[string]string{"image_url": "https://cdn.example.com/chat.png"})
	})

	url, err := c.UploadScreenshot(context.Background(), "chat.png", "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("UploadScreenshot() error = %v", err)
	}
	if url != "https://cdn.example.com/chat.png" {
		t.Errorf("image_url = %q", url)
	}
	if gotName != "chat.png" || gotType != "image/png" || len(gotData) != 3 {
		t.Errorf("server saw name=%q type=%q len=%d", gotName, gotType, len(gotData))
	}
}

func TestUploadScreenshot_Detail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "File must be an image"}`))
	})

	_, err := c.UploadScreenshot(context.Background(), "a.png", "image/png", []byte{1})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Detail != "File must be an image" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestUploadScreenshot_MissingImageURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	if _, err := c.UploadScreenshot(context.Background(), "a.png", "image/png", []byte{1}); err == nil || err.Error() != "Upload failed" {
		t.Errorf("err = %v, want Upload failed", err)
	}
}

func TestCalculateRizz(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calculate_rizz/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req models.ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.ImageURL != "http://x/y.png" || req.Nickname != "casanova" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"score": 72, "suggestions": ["Be bolder"], "reasoning": "ok", "image_url": "http://x/y.png", "meme_url": "http://x/m.png"}`))
	})

	res, err := c.CalculateRizz(context.Background(), models.ScoreRequest{ImageURL: "http://x/y.png", Nickname: "casanova"})
	if err != nil {
		t.Fatalf("CalculateRizz() error = %v", err)
	}
	if res.Score != 72 || res.MemeURL != "http://x/m.png" {
		t.Errorf("result = %+v", res)
	}
	if res.Nickname != "casanova" {
		t.Errorf("Nickname = %q, want request nickname carried over", res.Nickname)
	}
}

func TestCalculateRizz_ServerErrorWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := c.CalculateRizz(context.Background(), models.ScoreRequest{ImageURL: "http://x/y.png", Nickname: "n"})
	if err == nil || err.Error() != "Failed to calculate rizz" {
		t.Errorf("err = %v, want fallback message", err)
	}
	if !IsAPIError(err) {
		t.Error("expected an APIError")
	}
}

func TestCalculateRizz_TransportError(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Logger: zap.NewNop()})

	_, err := c.CalculateRizz(context.Background(), models.ScoreRequest{ImageURL: "http://x/y.png", Nickname: "n"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if IsAPIError(err) {
		t.Error("transport failures are not APIErrors")
	}
	if !strings.HasPrefix(err.Error(), "Failed to calculate rizz") {
		t.Errorf("err = %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Entries",
			status:  http.StatusOK,
			body:    `{"leaderboard": [{"nickname": "A", "avg_rizz": 90, "total_scores": 3}]}`,
			wantLen: 1,
		},
		{
			name:    "Null leaderboard",
			status:  http.StatusOK,
			body:    `{"leaderboard": null}`,
			wantLen: 0,
		},
		{
			name:    "Backend failure",
			status:  http.StatusInternalServerError,
			body:    `{"detail": "Error fetching leaderboard: boom"}`,
			wantErr: true,
		},
		{
			name:    "Garbage body",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/leaderboard/" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			entries, err := c.Leaderboard(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(entries) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(entries), tt.wantLen)
			}
		})
	}
}
