package faster_whisper

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whisper-skill/internal/config"
)

func TestBuildOptions(t *testing.T) {
	t.Run("language_auto_is_not_forwarded", func(t *testing.T) {
		cfg := config.Default()
		cfg.Language = config.LanguageAuto

		opts := buildOptions("audio.mp3", cfg)
		assert.Nil(t, opts.Language)
	})

	t.Run("unset_language_is_not_forwarded", func(t *testing.T) {
		opts := buildOptions("audio.mp3", config.Default())
		assert.Nil(t, opts.Language)
	})

	t.Run("forced_language_is_forwarded", func(t *testing.T) {
		cfg := config.Default()
		cfg.Language = "zh"

		opts := buildOptions("audio.mp3", cfg)
		require.NotNil(t, opts.Language)
		assert.Equal(t, "zh", *opts.Language)
	})

	t.Run("vad_parameters_only_with_vad_filter", func(t *testing.T) {
		cfg := config.Default()
		cfg.VADParameters = map[string]any{"min_silence_duration_ms": 500}

		opts := buildOptions("audio.mp3", cfg)
		assert.Nil(t, opts.VADParameters)

		cfg.VADFilter = true
		opts = buildOptions("audio.mp3", cfg)
		assert.Equal(t, cfg.VADParameters, opts.VADParameters)
	})

	t.Run("config_values_carry_through", func(t *testing.T) {
		cfg := config.Default()
		cfg.ModelSize = "small"
		cfg.Device = "cuda"
		cfg.BeamSize = 8
		cfg.WordTimestamps = true

		opts := buildOptions("/tmp/a.wav", cfg)
		assert.Equal(t, "/tmp/a.wav", opts.AudioPath)
		assert.Equal(t, "small", opts.ModelSize)
		assert.Equal(t, "cuda", opts.Device)
		assert.Equal(t, 8, opts.BeamSize)
		assert.True(t, opts.WordTimestamps)
	})
}

func TestParseResult(t *testing.T) {
	t.Run("decodes_full_document", func(t *testing.T) {
		raw := `{
			"language": "en",
			"language_probability": 0.95,
			"duration": 10.5,
			"segments": [
				{"start": 0, "end": 2.5, "text": "hello",
				 "words": [{"start": 0, "end": 1.0, "word": "hello", "probability": 0.9}]}
			]
		}`

		result, err := parseResult([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, "en", result.Language)
		assert.Equal(t, 0.95, result.LanguageProbability)
		require.Len(t, result.Segments, 1)
		assert.Equal(t, "hello", result.Segments[0].Text)
		require.Len(t, result.Segments[0].Words, 1)
		assert.Equal(t, 0.9, result.Segments[0].Words[0].Probability)
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := parseResult([]byte("Traceback (most recent call last):"))
		assert.Error(t, err)
	})

	t.Run("rejects_invalid_segment_timing", func(t *testing.T) {
		raw := `{"language": "en", "segments": [{"start": 5, "end": 1, "text": "bad"}]}`
		_, err := parseResult([]byte(raw))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid segments")
	})
}

func TestEngine_Transcribe(t *testing.T) {
	t.Run("successful_run", func(t *testing.T) {
		var gotStdin []byte
		engine := NewEngine("/fake/python", zap.NewNop())
		engine.runner = func(ctx context.Context, python string, stdin []byte) ([]byte, []byte, error) {
			gotStdin = stdin
			assert.Equal(t, "/fake/python", python)
			return []byte(`{"language":"ja","language_probability":0.8,"duration":3,"segments":[{"start":0,"end":3,"text":"テスト"}]}`), nil, nil
		}

		cfg := config.Default()
		cfg.Language = "ja"
		result, err := engine.Transcribe(context.Background(), "audio.mp3", cfg)
		require.NoError(t, err)
		assert.Equal(t, "ja", result.Language)
		require.Len(t, result.Segments, 1)

		var opts runnerOptions
		require.NoError(t, json.Unmarshal(gotStdin, &opts))
		assert.Equal(t, "audio.mp3", opts.AudioPath)
		require.NotNil(t, opts.Language)
		assert.Equal(t, "ja", *opts.Language)
	})

	t.Run("runner_failure_surfaces_stderr", func(t *testing.T) {
		engine := NewEngine("/fake/python", zap.NewNop())
		engine.runner = func(ctx context.Context, python string, stdin []byte) ([]byte, []byte, error) {
			return nil, []byte("faster-whisper not installed\n"), errors.New("exit status 1")
		}

		_, err := engine.Transcribe(context.Background(), "audio.mp3", config.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "faster-whisper not installed")
	})

	t.Run("runner_failure_without_stderr", func(t *testing.T) {
		engine := NewEngine("/fake/python", zap.NewNop())
		engine.runner = func(ctx context.Context, python string, stdin []byte) ([]byte, []byte, error) {
			return nil, nil, errors.New("exec: file does not exist")
		}

		_, err := engine.Transcribe(context.Background(), "audio.mp3", config.Default())
		assert.Error(t, err)
	})
}
