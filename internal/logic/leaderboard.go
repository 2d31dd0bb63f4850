package logic

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// AnonymousNickname stands in for entries without a name
const AnonymousNickname = "Anonymous"

type leaderboardService struct {
	backend ScoringBackend
	logger  *zap.SugaredLogger
}

func NewLeaderboardService(backend ScoringBackend, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{backend: backend, logger: logger.Sugar()}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]models.RankedEntry, error) {
	entries, err := s.backend.Leaderboard(ctx)
	if err != nil {
		s.logger.Warnw("Failed to fetch leaderboard", "error", err)
		return nil, err
	}
	return Rank(entries), nil
}

// Rank numbers entries in the order the backend returned them.
func Rank(entries []models.LeaderboardEntry) []models.RankedEntry {
	ranked := make([]models.RankedEntry, 0, len(entries))
	for i, e := range entries {
		nickname := e.Nickname
		if nickname == "" {
			nickname = AnonymousNickname
		}
		total := e.TotalScores
		if total <= 0 {
			total = 1
		}

		entry := models.RankedEntry{
			Rank:        i + 1,
			Nickname:    nickname,
			Score:       e.AvgRizz,
			TotalScores: total,
			ScoreLabel:  FormatScore(e.AvgRizz) + "/100",
			TopThree:    i < 3,
		}
		if entry.ShowCount() {
			entry.CountLabel = fmt.Sprintf("%d scores", total)
		}
		ranked = append(ranked, entry)
	}
	return ranked
}

// FormatScore prints whole scores without decimals and others with one.
func FormatScore(score float64) string {
	if score == float64(int64(score)) {
		return strconv.FormatInt(int64(score), 10)
	}
	return strconv.FormatFloat(score, 'f', 1, 64)
}
