// Package results keeps analysis results addressable by a generated ID so
// the results and share pages survive a reload.
package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// ErrNotFound is returned for unknown or expired result IDs.
var ErrNotFound = errors.New("result not found")

// Store is the request-scoped result cache.
type Store interface {
	Put(ctx context.Context, result models.AnalysisResult) (*models.StoredResult, error)
	Get(ctx context.Context, id string) (*models.StoredResult, error)
}

func newStored(result models.AnalysisResult, now time.Time) *models.StoredResult {
	return &models.StoredResult{
		ID:        uuid.NewString(),
		Result:    result,
		CreatedAt: now.UTC(),
	}
}

// validID rejects anything that is not a uuid before it reaches a backend
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
