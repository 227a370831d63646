package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-scribe/internal/app/model"
)

func TestToExcel_WritesHeaderAndRows(t *testing.T) {
	records := []model.AnalysisRecord{
		{
			ID:                 1,
			FileName:           "standup.mp3",
			Language:           "zh",
			TranscriptionModel: "whisper-1",
			AnalysisModel:      "gpt-4o-mini",
			CoverageRatio:      0.97,
			Similarity:         0.91,
			Fallback:           false,
			CreatedAt:          time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			Transcript:         "大家早安",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ToExcel(records, &buf))

	// An xlsx file is a zip archive; the magic bytes are enough to know a
	// real document was produced.
	assert.Greater(t, buf.Len(), 4)
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestToExcel_EmptyRecordsStillWritesSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToExcel(nil, &buf))
	assert.Greater(t, buf.Len(), 0)
}
