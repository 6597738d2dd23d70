package repository

import "whisper-skill/internal/app/model"

// RunDAO persists transcription run records.
type RunDAO interface {
	Close() error

	// Record stores one run, successful or failed.
	Record(run model.Run) error

	// Recent returns the most recent runs, newest first. limit <= 0
	// returns everything.
	Recent(limit int) ([]model.Run, error)
}
