package model

import "time"

// Run is one recorded transcription invocation.
type Run struct {
	ID                  string
	AudioFile           string
	ModelSize           string
	Language            string
	LanguageProbability float64
	Duration            float64
	Format              string
	OutputPath          string
	CreatedAt           time.Time
	HasError            bool
	ErrorMessage        string
}
