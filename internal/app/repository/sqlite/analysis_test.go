package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-scribe/internal/app/model"
)

func newMockDB(t *testing.T) (*AnalysisDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnalysisDB(db), mock
}

func recordColumns() []string {
	return []string{
		"id", "file_name", "language", "transcription_model", "analysis_model",
		"target_language", "transcript", "payload", "coverage_ratio", "similarity",
		"fallback", "created_at",
	}
}

func TestSave_InsertsAndAssignsID(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("meeting.mp3", "zh", "whisper-1", "gpt-4o-mini", "English",
			"transcript text", `{"language":"zh"}`, 0.97, 0.9, 0).
		WillReturnResult(sqlmock.NewResult(7, 1))

	record := &model.AnalysisRecord{
		FileName:           "meeting.mp3",
		Language:           "zh",
		TranscriptionModel: "whisper-1",
		AnalysisModel:      "gpt-4o-mini",
		TargetLanguage:     "English",
		Transcript:         "transcript text",
		Payload:            `{"language":"zh"}`,
		CoverageRatio:      0.97,
		Similarity:         0.9,
	}

	id, err := dao.Save(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_FallbackStoredAsOne(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("a.wav", "", "", "", "", "", "", 0.0, 0.0, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := dao.Save(context.Background(), &model.AnalysisRecord{FileName: "a.wav", Fallback: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_ScansRecord(t *testing.T) {
	dao, mock := newMockDB(t)
	created := time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM analyses WHERE id = ?").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(recordColumns()).
			AddRow(3, "sync.m4a", "nan", "whisper-1", "gpt-4o", "繁體中文",
				"逐字稿", "{}", 0.99, 0.95, 1, created))

	record, err := dao.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), record.ID)
	assert.Equal(t, "sync.m4a", record.FileName)
	assert.Equal(t, "nan", record.Language)
	assert.True(t, record.Fallback)
	assert.Equal(t, created, record.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_MissingRowIsError(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM analyses WHERE id = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(recordColumns()))

	_, err := dao.FindByID(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFindRecent_AppliesDefaultLimit(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM analyses ORDER BY created_at DESC").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(recordColumns()).
			AddRow(2, "b.mp3", "en", "", "", "", "", "{}", 1.0, 1.0, 0, time.Now()).
			AddRow(1, "a.mp3", "zh", "", "", "", "", "{}", 0.8, 0.7, 0, time.Now()))

	records, err := dao.FindRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
