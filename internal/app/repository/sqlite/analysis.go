package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"meeting-scribe/internal/app/model"
	"meeting-scribe/internal/app/repository"
)

// AnalysisDB implements repository.AnalysisDAO on SQLite.
type AnalysisDB struct {
	db *sql.DB
}

var _ repository.AnalysisDAO = (*AnalysisDB)(nil)

// NewAnalysisDB wraps an open database handle. Tests pass a mocked handle.
func NewAnalysisDB(db *sql.DB) *AnalysisDB {
	return &AnalysisDB{db: db}
}

func (a *AnalysisDB) Save(ctx context.Context, record *model.AnalysisRecord) (int64, error) {
	result, err := a.db.ExecContext(ctx, `
		INSERT INTO analyses (
			file_name, language, transcription_model, analysis_model,
			target_language, transcript, payload, coverage_ratio, similarity, fallback
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.FileName, record.Language, record.TranscriptionModel, record.AnalysisModel,
		record.TargetLanguage, record.Transcript, record.Payload,
		record.CoverageRatio, record.Similarity, boolToInt(record.Fallback),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	record.ID = id
	return id, nil
}

const selectColumns = `
	id, file_name, language, transcription_model, analysis_model,
	target_language, transcript, payload, coverage_ratio, similarity, fallback, created_at`

func (a *AnalysisDB) FindByID(ctx context.Context, id int64) (*model.AnalysisRecord, error) {
	row := a.db.QueryRowContext(ctx, `SELECT`+selectColumns+` FROM analyses WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	return record, nil
}

func (a *AnalysisDB) FindRecent(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT`+selectColumns+` FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (a *AnalysisDB) Close() error {
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	var fallback int
	if err := s.Scan(
		&record.ID, &record.FileName, &record.Language,
		&record.TranscriptionModel, &record.AnalysisModel, &record.TargetLanguage,
		&record.Transcript, &record.Payload,
		&record.CoverageRatio, &record.Similarity, &fallback, &record.CreatedAt,
	); err != nil {
		return nil, err
	}
	record.Fallback = fallback != 0
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
