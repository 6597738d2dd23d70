package api

import (
	"context"

	"whisper-skill/internal/app/model"
	"whisper-skill/internal/config"
)

// Transcriber defines a transcription interface for converting an audio
// file into timed segments. Implementations delegate the actual speech
// recognition to an external engine.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, cfg config.Transcription) (*model.TranscriptionResult, error)
}
