//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"whisper-skill/internal/app/transcribe"
)

// InitializeRunner assembles the transcription pipeline: the configured
// engine, the run history store and the logger.
func InitializeRunner(verbose bool) *transcribe.Runner {
	wire.Build(transcribe.NewRunner, provideTranscriber, provideRunDAO, provideLogger)
	return &transcribe.Runner{}
}
