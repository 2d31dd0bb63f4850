package logic

import (
	"context"
	"sync"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// MockBackend
type MockBackend struct {
	UploadFunc      func(ctx context.Context, filename, contentType string, data []byte) (string, error)
	CalculateFunc   func(ctx context.Context, req models.ScoreRequest) (*models.AnalysisResult, error)
	LeaderboardFunc func(ctx context.Context) ([]models.LeaderboardEntry, error)

	mu         sync.Mutex
	Calculated int
}

func (m *MockBackend) UploadScreenshot(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, contentType, data)
	}
	return "https://cdn.example.com/" + filename, nil
}

func (m *MockBackend) CalculateRizz(ctx context.Context, req models.ScoreRequest) (*models.AnalysisResult, error) {
	m.mu.Lock()
	m.Calculated++
	m.mu.Unlock()
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, req)
	}
	return &models.AnalysisResult{Score: 50, ImageURL: req.ImageURL}, nil
}

func (m *MockBackend) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calculated
}

// MockHistory records what it is given
type MockHistory struct {
	mu      sync.Mutex
	Records []models.HistoryRecord
	Err     error
}

func (m *MockHistory) Enabled() bool { return true }

func (m *MockHistory) Record(ctx context.Context, rec models.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockHistory) Recent(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records, nil
}
