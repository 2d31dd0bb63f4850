package logic

import (
	"context"
	"fmt"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// HistorySchema creates the analyses table on first start
const HistorySchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         UUID PRIMARY KEY,
	nickname   TEXT NOT NULL,
	score      SMALLINT NOT NULL,
	image_url  TEXT NOT NULL,
	meme_url   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_nickname_created_idx ON analyses (nickname, created_at DESC);
`

// MaxHistoryLimit caps how many rows a history page may request
const MaxHistoryLimit = 50

type pgHistoryStore struct {
	pg PgPool
}

func NewHistoryStore(pg PgPool) HistoryStore {
	return &pgHistoryStore{pg: pg}
}

// EnsureSchema installs HistorySchema
func EnsureSchema(ctx context.Context, pg PgPool) error {
	if _, err := pg.Exec(ctx, HistorySchema); err != nil {
		return fmt.Errorf("install history schema: %w", err)
	}
	return nil
}

func (s *pgHistoryStore) Enabled() bool { return true }

func (s *pgHistoryStore) Record(ctx context.Context, rec models.HistoryRecord) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO analyses (id, nickname, score, image_url, meme_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, rec.ID, rec.Nickname, rec.Score, rec.ImageURL, rec.MemeURL, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (s *pgHistoryStore) Recent(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := s.pg.Query(ctx, `
		SELECT id::text, nickname, score, image_url, meme_url, created_at
		FROM analyses
		WHERE nickname = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, nickname, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]models.HistoryRecord, 0)
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Nickname, &rec.Score, &rec.ImageURL, &rec.MemeURL, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// NopHistoryStore is used when no database is configured
type NopHistoryStore struct{}

func (NopHistoryStore) Enabled() bool { return false }

func (NopHistoryStore) Record(ctx context.Context, rec models.HistoryRecord) error { return nil }

func (NopHistoryStore) Recent(ctx context.Context, nickname string, limit int) ([]models.HistoryRecord, error) {
	return []models.HistoryRecord{}, nil
}
