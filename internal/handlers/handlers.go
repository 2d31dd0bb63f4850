package handlers

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/intake"
	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/models"
)

// multipartOverhead is allowed on top of the screenshot limit for form
// boundaries and the nickname field.
const multipartOverhead = 1 << 20

// AnalysisQueue defines the interface for the analysis worker pool
type AnalysisQueue interface {
	Enqueue(imageURL, nickname string) (string, error)
	Status(id string) (models.JobStatus, bool)
	QueueDepth() int
}

type Config struct {
	Queue    AnalysisQueue
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger
	// Services
	Analysis    logic.AnalysisService
	Leaderboard logic.LeaderboardService
	History     logic.HistoryStore
	// PublicURL is the share link origin. Empty means the request host.
	PublicURL      string
	MaxUploadBytes int64
}

type Handler struct {
	queue          AnalysisQueue
	pg             *pgxpool.Pool
	redis          *redis.Client
	logger         *zap.SugaredLogger
	analysis       logic.AnalysisService
	leaderboard    logic.LeaderboardService
	history        logic.HistoryStore
	publicURL      string
	maxUploadBytes int64
}

func New(cfg Config) *Handler {
	history := cfg.History
	if history == nil {
		history = logic.NopHistoryStore{}
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = intake.MaxScreenshotBytes
	}
	return &Handler{
		queue:          cfg.Queue,
		pg:             cfg.Postgres,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		analysis:       cfg.Analysis,
		leaderboard:    cfg.Leaderboard,
		history:        history,
		publicURL:      cfg.PublicURL,
		maxUploadBytes: maxUpload,
	}
}
