package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// LanguageAuto is the sentinel a user passes to force language detection.
// It is normalized away by LanguageHint so no other code ever compares
// against the literal string.
const LanguageAuto = "auto"

// Transcription holds every option forwarded to the transcription engine.
// Precedence is hardcoded default < config file < command-line flag.
type Transcription struct {
	ModelSize      string         `json:"model_size"`
	Device         string         `json:"device"`
	ComputeType    string         `json:"compute_type"`
	Language       string         `json:"language,omitempty"`
	Task           string         `json:"task"`
	BeamSize       int            `json:"beam_size"`
	VADFilter      bool           `json:"vad_filter"`
	VADParameters  map[string]any `json:"vad_parameters,omitempty"`
	WordTimestamps bool           `json:"word_timestamps"`
}

// Default returns the hardcoded defaults.
func Default() Transcription {
	return Transcription{
		ModelSize:   "large-v3",
		Device:      "cpu",
		ComputeType: "int8",
		Task:        "transcribe",
		BeamSize:    5,
	}
}

// LoadFile reads a JSON config file and merges it over the defaults.
// A missing file is not an error: it yields pure defaults.
func LoadFile(path string) (Transcription, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	// Unmarshal onto the defaults, so absent keys keep their default value.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Overrides carries the command-line values. A nil field means the flag
// was not set and the underlying value survives.
type Overrides struct {
	ModelSize      *string
	Device         *string
	ComputeType    *string
	Language       *string
	Task           *string
	BeamSize       *int
	VADFilter      *bool
	WordTimestamps *bool
}

// Apply layers the overrides over the receiver and returns the result.
func (t Transcription) Apply(o Overrides) Transcription {
	if o.ModelSize != nil {
		t.ModelSize = *o.ModelSize
	}
	if o.Device != nil {
		t.Device = *o.Device
	}
	if o.ComputeType != nil {
		t.ComputeType = *o.ComputeType
	}
	if o.Language != nil {
		t.Language = *o.Language
	}
	if o.Task != nil {
		t.Task = *o.Task
	}
	if o.BeamSize != nil {
		t.BeamSize = *o.BeamSize
	}
	if o.VADFilter != nil {
		t.VADFilter = *o.VADFilter
	}
	if o.WordTimestamps != nil {
		t.WordTimestamps = *o.WordTimestamps
	}
	return t
}

// LanguageHint returns the language code to force, if any. Both an unset
// language and the "auto" sentinel mean detection is left to the engine.
func (t Transcription) LanguageHint() (string, bool) {
	if t.Language == "" || t.Language == LanguageAuto {
		return "", false
	}
	return t.Language, true
}

// Validate rejects option values the engine cannot accept.
func (t Transcription) Validate() error {
	switch t.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("invalid device %q (must be cpu or cuda)", t.Device)
	}
	switch t.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("invalid task %q (must be transcribe or translate)", t.Task)
	}
	if t.BeamSize < 1 {
		return fmt.Errorf("beam size must be positive, got %d", t.BeamSize)
	}
	if t.ModelSize == "" {
		return fmt.Errorf("model size cannot be empty")
	}
	return nil
}
