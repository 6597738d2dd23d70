// Package faster_whisper runs transcriptions through the faster-whisper
// Python library installed in the skill's virtual environment.
package faster_whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"whisper-skill/internal/app/model"
	"whisper-skill/internal/config"
)

// runnerProgram is executed by the venv's python interpreter. It reads
// the merged options as JSON on stdin, calls faster-whisper, and prints
// the result document as JSON on stdout. All recognition, VAD and beam
// search happen inside the library.
const runnerProgram = `
import json, sys
try:
    from faster_whisper import WhisperModel
except ImportError:
    print("faster-whisper not installed; run the setup command first", file=sys.stderr)
    sys.exit(1)

opts = json.load(sys.stdin)
model = WhisperModel(opts["model_size"], device=opts["device"], compute_type=opts["compute_type"])
segments, info = model.transcribe(
    opts["audio_path"],
    language=opts.get("language"),
    task=opts["task"],
    beam_size=opts["beam_size"],
    vad_filter=opts["vad_filter"],
    vad_parameters=opts.get("vad_parameters"),
    word_timestamps=opts["word_timestamps"],
)
out = {
    "language": info.language,
    "language_probability": info.language_probability,
    "duration": info.duration,
    "segments": [],
}
for s in segments:
    seg = {"start": s.start, "end": s.end, "text": s.text.strip()}
    if opts["word_timestamps"] and s.words:
        seg["words"] = [
            {"start": w.start, "end": w.end, "word": w.word, "probability": w.probability}
            for w in s.words
        ]
    out["segments"].append(seg)
json.dump(out, sys.stdout, ensure_ascii=False)
`

// Engine implements local transcription by executing the skill venv's
// python with an embedded runner program.
type Engine struct {
	python string
	runner commandRunner
	logger *zap.Logger
}

// commandRunner abstracts subprocess execution so tests can fake it.
type commandRunner func(ctx context.Context, python string, stdin []byte) (stdout []byte, stderr []byte, err error)

// NewEngine creates an Engine that uses the given python executable,
// normally the one inside the skill's virtual environment.
func NewEngine(pythonPath string, logger *zap.Logger) *Engine {
	return &Engine{
		python: pythonPath,
		runner: runPython,
		logger: logger,
	}
}

type runnerOptions struct {
	AudioPath      string         `json:"audio_path"`
	ModelSize      string         `json:"model_size"`
	Device         string         `json:"device"`
	ComputeType    string         `json:"compute_type"`
	Language       *string        `json:"language"`
	Task           string         `json:"task"`
	BeamSize       int            `json:"beam_size"`
	VADFilter      bool           `json:"vad_filter"`
	VADParameters  map[string]any `json:"vad_parameters"`
	WordTimestamps bool           `json:"word_timestamps"`
}

// buildOptions maps the merged config onto the runner's option document.
// The language is only forwarded when the user forced a real code; the
// auto sentinel and an unset language both leave detection to the engine.
func buildOptions(audioPath string, cfg config.Transcription) runnerOptions {
	opts := runnerOptions{
		AudioPath:      audioPath,
		ModelSize:      cfg.ModelSize,
		Device:         cfg.Device,
		ComputeType:    cfg.ComputeType,
		Task:           cfg.Task,
		BeamSize:       cfg.BeamSize,
		VADFilter:      cfg.VADFilter,
		WordTimestamps: cfg.WordTimestamps,
	}
	if code, ok := cfg.LanguageHint(); ok {
		opts.Language = &code
	}
	if cfg.VADFilter {
		opts.VADParameters = cfg.VADParameters
	}
	return opts
}

// Transcribe executes the runner and decodes its JSON result.
func (e *Engine) Transcribe(ctx context.Context, audioPath string, cfg config.Transcription) (*model.TranscriptionResult, error) {
	payload, err := json.Marshal(buildOptions(audioPath, cfg))
	if err != nil {
		return nil, fmt.Errorf("encode engine options: %w", err)
	}

	e.logger.Debug("starting transcription",
		zap.String("audio", audioPath),
		zap.String("model", cfg.ModelSize),
		zap.String("device", cfg.Device),
		zap.String("compute_type", cfg.ComputeType))

	stdout, stderr, err := e.runner(ctx, e.python, payload)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			return nil, fmt.Errorf("faster-whisper runner failed: %w", err)
		}
		return nil, fmt.Errorf("faster-whisper runner failed: %w: %s", err, msg)
	}

	result, err := parseResult(stdout)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("transcription finished",
		zap.String("language", result.Language),
		zap.Float64("duration", result.Duration),
		zap.Int("segments", len(result.Segments)))

	return result, nil
}

// parseResult decodes the runner's JSON output and checks the segment
// timing invariant before handing the result on.
func parseResult(data []byte) (*model.TranscriptionResult, error) {
	var result model.TranscriptionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode engine output: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("engine produced invalid segments: %w", err)
	}
	return &result, nil
}

func runPython(ctx context.Context, python string, stdin []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, python, "-c", runnerProgram)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
