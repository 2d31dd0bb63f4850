package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rizzcalc/rizz-web/internal/intake"
	"github.com/rizzcalc/rizz-web/internal/models"
	"github.com/rizzcalc/rizz-web/internal/results"
)

// MaxNicknameLength is the longest nickname shown on the leaderboard
const MaxNicknameLength = 30

// ErrMissingInput means the analyze action was not enabled yet.
var ErrMissingInput = errors.New("image url and nickname are required")

// sharedAnalyzeTimeout bounds a scoring call shared between callers. It is
// detached from any single caller's context.
const sharedAnalyzeTimeout = 2 * time.Minute

// UploadOutcome is a hosted screenshot plus its local preview
type UploadOutcome struct {
	ImageURL string
	Preview  string
}

type analysisService struct {
	backend  ScoringBackend
	results  results.Store
	history  HistoryStore
	intake   *intake.Validator
	validate *validator.Validate
	inflight singleflight.Group
	logger   *zap.SugaredLogger
}

func NewAnalysisService(backend ScoringBackend, store results.Store, history HistoryStore, v *intake.Validator, logger *zap.Logger) AnalysisService {
	if history == nil {
		history = NopHistoryStore{}
	}
	return &analysisService{
		backend:  backend,
		results:  store,
		history:  history,
		intake:   v,
		validate: validator.New(),
		logger:   logger.Sugar(),
	}
}

// CanAnalyze is true once a screenshot is hosted and a nickname is typed.
func CanAnalyze(imageURL, nickname string) bool {
	return strings.TrimSpace(imageURL) != "" && strings.TrimSpace(nickname) != ""
}

// NormalizeNickname trims whitespace and caps the length in runes.
func NormalizeNickname(nickname string) string {
	nickname = strings.TrimSpace(nickname)
	if utf8.RuneCountInString(nickname) <= MaxNicknameLength {
		return nickname
	}
	runes := []rune(nickname)
	return strings.TrimSpace(string(runes[:MaxNicknameLength]))
}

// Upload validates the screenshot locally, then hosts it on the backend.
func (s *analysisService) Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadOutcome, error) {
	shot, err := s.intake.Validate(filename, contentType, data)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.backend.UploadScreenshot(ctx, shot.Filename, shot.ContentType, shot.Data)
	if err != nil {
		s.logger.Warnw("Screenshot upload failed", "filename", filename, "error", err)
		return nil, err
	}

	s.logger.Infow("Screenshot uploaded", "filename", filename, "bytes", len(data), "image_url", imageURL)
	return &UploadOutcome{ImageURL: imageURL, Preview: shot.PreviewDataURL()}, nil
}

// Analyze scores a hosted screenshot and parks the result in the cache.
// Concurrent calls for the same screenshot and nickname share one request.
func (s *analysisService) Analyze(ctx context.Context, imageURL, nickname string) (*models.StoredResult, error) {
	imageURL = strings.TrimSpace(imageURL)
	nickname = NormalizeNickname(nickname)
	if !CanAnalyze(imageURL, nickname) {
		return nil, ErrMissingInput
	}

	req := models.ScoreRequest{ImageURL: imageURL, Nickname: nickname}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warnw("Score request failed validation", "error", err)
		return nil, fmt.Errorf("invalid score request: %w", err)
	}

	key := imageURL + "\x00" + nickname
	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedAnalyzeTimeout)
		defer cancel()
		return s.analyze(callCtx, req)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Infow("Collapsed duplicate analysis", "nickname", nickname)
		}
		return res.Val.(*models.StoredResult), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *analysisService) analyze(ctx context.Context, req models.ScoreRequest) (*models.StoredResult, error) {
	result, err := s.backend.CalculateRizz(ctx, req)
	if err != nil {
		s.logger.Warnw("Rizz calculation failed", "nickname", req.Nickname, "error", err)
		return nil, err
	}
	result.Score = clampScore(result.Score)
	result.Nickname = req.Nickname

	stored, err := s.results.Put(ctx, *result)
	if err != nil {
		s.logger.Errorw("Failed to cache result", "error", err)
		return nil, fmt.Errorf("cache result: %w", err)
	}

	if s.history.Enabled() {
		rec := models.HistoryRecord{
			ID:        stored.ID,
			Nickname:  req.Nickname,
			Score:     result.Score,
			ImageURL:  result.ImageURL,
			MemeURL:   result.MemeURL,
			CreatedAt: stored.CreatedAt,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			s.logger.Warnw("Failed to record history", "id", stored.ID, "error", err)
		}
	}

	s.logger.Infow("Rizz calculated", "id", stored.ID, "nickname", req.Nickname, "score", result.Score)
	return stored, nil
}

// Result loads a cached analysis by ID
func (s *analysisService) Result(ctx context.Context, id string) (*models.StoredResult, error) {
	return s.results.Get(ctx, id)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
