package repository

import (
	"context"
	"errors"

	"meeting-scribe/internal/app/model"
)

// ErrNotFound marks lookups for analyses that do not exist.
var ErrNotFound = errors.New("not found")

// AnalysisDAO persists completed meeting analyses.
type AnalysisDAO interface {
	Save(ctx context.Context, record *model.AnalysisRecord) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.AnalysisRecord, error)
	FindRecent(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
	Close() error
}
