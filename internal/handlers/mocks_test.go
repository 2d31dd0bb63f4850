package handlers

import (
	"context"

	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/models"
	"github.com/rizzcalc/rizz-web/internal/results"
)

// MockAnalysisService
type MockAnalysisService struct {
	UploadFunc  func(ctx context.Context, filename, contentType string, data []byte) (*logic.UploadOutcome, error)
	AnalyzeFunc func(ctx context.Context, imageURL, nickname string) (*models.StoredResult, error)
	ResultFunc  func(ctx context.Context, id string) (*models.StoredResult, error)
}

func (m *MockAnalysisService) Upload(ctx context.Context, filename, contentType string, data []byte) (*logic.UploadOutcome, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, contentType, data)
	}
	return &logic.UploadOutcome{ImageURL: "https://cdn.example.com/shot.png"}, nil
}

func (m *MockAnalysisService) Analyze(ctx context.Context, imageURL, nickname string) (*models.StoredResult, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, imageURL, nickname)
	}
	return &models.StoredResult{ID: "result-1"}, nil
}

func (m *MockAnalysisService) Result(ctx context.Context, id string) (*models.StoredResult, error) {
	if m.ResultFunc != nil {
		return m.ResultFunc(ctx, id)
	}
	return nil, results.ErrNotFound
}

// MockLeaderboardService
type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context) ([]models.RankedEntry, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context) ([]models.RankedEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx)
	}
	return []models.RankedEntry{}, nil
}

// MockHistoryStore
type MockHistoryStore struct {
	RecentFunc func(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error)
}

func (m *MockHistoryStore) Enabled() bool { return true }

func (m *MockHistoryStore) Record(ctx context.Context, rec models.HistoryRecord) error { return nil }

func (m *MockHistoryStore) Recent(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, nickname, limit)
	}
	return []models.HistoryRecord{}, nil
}

// MockQueue
type MockQueue struct {
	EnqueueFunc func(imageURL, nickname string) (string, error)
	StatusFunc  func(id string) (models.JobStatus, bool)
}

func (m *MockQueue) Enqueue(imageURL, nickname string) (string, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(imageURL, nickname)
	}
	return "job-1", nil
}

func (m *MockQueue) Status(id string) (models.JobStatus, bool) {
	if m.StatusFunc != nil {
		return m.StatusFunc(id)
	}
	return models.JobStatus{}, false
}

func (m *MockQueue) QueueDepth() int { return 0 }
