package logic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ScoringBackend is the opaque scoring API
type ScoringBackend interface {
	UploadScreenshot(ctx context.Context, filename, contentType string, data []byte) (string, error)
	CalculateRizz(ctx context.Context, req models.ScoreRequest) (*models.AnalysisResult, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// HistoryStore keeps past analyses per nickname
type HistoryStore interface {
	Record(ctx context.Context, rec models.HistoryRecord) error
	Recent(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error)
	Enabled() bool
}

// AnalysisService runs the upload + analyze sequence
type AnalysisService interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadOutcome, error)
	Analyze(ctx context.Context, imageURL, nickname string) (*models.StoredResult, error)
	Result(ctx context.Context, id string) (*models.StoredResult, error)
}

// LeaderboardService ranks the backend leaderboard for display
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]models.RankedEntry, error)
}
