// Package backend is the HTTP client for the rizz scoring API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// maxResponseBytes bounds how much of a backend response we read
const maxResponseBytes = 1 << 20

const (
	endpointUpload      = "upload_screenshot"
	endpointCalculate   = "calculate_rizz"
	endpointLeaderboard = "leaderboard"
)

// Config configures the scoring API client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the three scoring API endpoints. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger.Sugar(),
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadScreenshot handles POST /upload_screenshot/ and returns the hosted image URL
func (c *Client) UploadScreenshot(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpointUpload), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadResponse
	if err := c.do(req, endpointUpload, "Upload failed", &resp); err != nil {
		return "", err
	}
	if resp.ImageURL == "" {
		return "", &APIError{Endpoint: endpointUpload, Status: http.StatusOK, Detail: "Upload failed"}
	}
	return resp.ImageURL, nil
}

// CalculateRizz handles POST /calculate_rizz/
func (c *Client) CalculateRizz(ctx context.Context, in models.ScoreRequest) (*models.AnalysisResult, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpointCalculate), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result models.AnalysisResult
	if err := c.do(req, endpointCalculate, "Failed to calculate rizz", &result); err != nil {
		return nil, err
	}
	if result.Nickname == "" {
		result.Nickname = in.Nickname
	}
	if result.ImageURL == "" {
		result.ImageURL = in.ImageURL
	}
	return &result, nil
}

// Leaderboard handles GET /leaderboard/
func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpointLeaderboard), nil)
	if err != nil {
		return nil, err
	}

	var resp models.LeaderboardResponse
	if err := c.do(req, endpointLeaderboard, "Failed to fetch leaderboard", &resp); err != nil {
		return nil, err
	}
	if resp.Leaderboard == nil {
		return []models.LeaderboardEntry{}, nil
	}
	return resp.Leaderboard, nil
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + "/" + endpoint + "/"
}

// do sends req and decodes a 2xx JSON body into out. Anything else becomes
// an *APIError carrying the backend's detail, or fallback when it has none.
func (c *Client) do(req *http.Request, endpoint, fallback string, out interface{}) error {
	start := time.Now()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		observe(endpoint, outcomeTransport, start)
		c.logger.Warnw("Backend request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		observe(endpoint, outcomeTransport, start)
		return fmt.Errorf("%s: read response: %w", fallback, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(endpoint, outcomeHTTPError, start)
		apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode, Detail: fallback}
		var be models.BackendError
		if json.Unmarshal(body, &be) == nil && be.Detail != "" {
			apiErr.Detail = be.Detail
		}
		c.logger.Warnw("Backend returned error", "endpoint", endpoint, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		observe(endpoint, outcomeDecode, start)
		c.logger.Warnw("Backend response not decodable", "endpoint", endpoint, "error", err, "preview", string(body[:min(len(body), 200)]))
		return fmt.Errorf("%s: decode response: %w", fallback, err)
	}

	observe(endpoint, outcomeOK, start)
	return nil
}
