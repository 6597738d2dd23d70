// Package transcribe orchestrates one transcription run: input check,
// engine call, output rendering and history recording.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whisper-skill/internal/app/api"
	"whisper-skill/internal/app/format"
	"whisper-skill/internal/app/model"
	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/app/util/files"
	"whisper-skill/internal/config"
)

// Request describes one transcription run.
type Request struct {
	AudioPath  string
	Config     config.Transcription
	Format     string
	OutputPath string
}

// Runner runs transcriptions through the configured engine and records
// each run in the history store.
type Runner struct {
	transcriber api.Transcriber
	history     repository.RunDAO
	logger      *zap.Logger
}

func NewRunner(transcriber api.Transcriber, history repository.RunDAO, logger *zap.Logger) *Runner {
	return &Runner{
		transcriber: transcriber,
		history:     history,
		logger:      logger,
	}
}

func (r *Runner) Close() error {
	return r.history.Close()
}

// Run executes the request and returns the rendered output. Engine
// failures are recorded in the history before being returned; history
// store failures only warn and never fail the run.
func (r *Runner) Run(ctx context.Context, req Request) (string, error) {
	if !files.Exists(req.AudioPath) {
		return "", fmt.Errorf("audio file not found: %s", req.AudioPath)
	}
	if err := req.Config.Validate(); err != nil {
		return "", err
	}
	if !format.Known(req.Format) {
		return "", fmt.Errorf("unknown output format: %s", req.Format)
	}

	result, err := r.transcriber.Transcribe(ctx, req.AudioPath, req.Config)
	if err != nil {
		r.record(req, nil, err)
		return "", err
	}

	output, err := format.Render(result, req.Format, time.Now())
	if err != nil {
		return "", err
	}

	r.record(req, result, nil)
	return output, nil
}

func (r *Runner) record(req Request, result *model.TranscriptionResult, runErr error) {
	run := model.Run{
		ID:         uuid.NewString(),
		AudioFile:  req.AudioPath,
		ModelSize:  req.Config.ModelSize,
		Format:     req.Format,
		OutputPath: req.OutputPath,
		CreatedAt:  time.Now(),
	}
	if result != nil {
		run.Language = result.Language
		run.LanguageProbability = result.LanguageProbability
		run.Duration = result.Duration
	}
	if runErr != nil {
		run.HasError = true
		run.ErrorMessage = runErr.Error()
	}

	if err := r.history.Record(run); err != nil {
		r.logger.Warn("failed to record run history", zap.Error(err))
	}
}
