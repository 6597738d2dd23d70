package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-skill/internal/app/model"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRun(created time.Time) model.Run {
	return model.Run{
		ID:                  uuid.NewString(),
		AudioFile:           "audio.mp3",
		ModelSize:           "large-v3",
		Language:            "en",
		LanguageProbability: 0.97,
		Duration:            42.5,
		Format:              "srt",
		OutputPath:          "out.srt",
		CreatedAt:           created,
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := sampleRun(base)
	second := sampleRun(base.Add(time.Minute))
	failed := model.Run{
		ID:           uuid.NewString(),
		AudioFile:    "broken.mp3",
		ModelSize:    "small",
		CreatedAt:    base.Add(2 * time.Minute),
		HasError:     true,
		ErrorMessage: "transcription failed",
	}

	require.NoError(t, db.Record(first))
	require.NoError(t, db.Record(second))
	require.NoError(t, db.Record(failed))

	runs, err := db.Recent(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, failed.ID, runs[0].ID)
	assert.True(t, runs[0].HasError)
	assert.Equal(t, "transcription failed", runs[0].ErrorMessage)
	assert.Equal(t, second.ID, runs[1].ID)
	assert.Equal(t, first.ID, runs[2].ID)

	assert.Equal(t, "en", runs[2].Language)
	assert.InDelta(t, 0.97, runs[2].LanguageProbability, 1e-9)
	assert.InDelta(t, 42.5, runs[2].Duration, 1e-9)
}

func TestRecentLimit(t *testing.T) {
	db := newTestDB(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Record(sampleRun(base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := db.Recent(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestDuplicateIDRejected(t *testing.T) {
	db := newTestDB(t)

	run := sampleRun(time.Now())
	require.NoError(t, db.Record(run))
	assert.Error(t, db.Record(run))
}
