package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "large-v3", cfg.ModelSize)
	assert.Equal(t, "cpu", cfg.Device)
	assert.Equal(t, "int8", cfg.ComputeType)
	assert.Empty(t, cfg.Language)
	assert.Equal(t, "transcribe", cfg.Task)
	assert.Equal(t, 5, cfg.BeamSize)
	assert.False(t, cfg.VADFilter)
	assert.Nil(t, cfg.VADParameters)
	assert.False(t, cfg.WordTimestamps)
}

func TestLoadFile(t *testing.T) {
	t.Run("missing_file_yields_defaults", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file_overrides_only_present_keys", func(t *testing.T) {
		path := writeConfig(t, `{"model_size": "small", "beam_size": 3, "vad_filter": true}`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "small", cfg.ModelSize)
		assert.Equal(t, 3, cfg.BeamSize)
		assert.True(t, cfg.VADFilter)
		// Untouched keys keep their defaults.
		assert.Equal(t, "cpu", cfg.Device)
		assert.Equal(t, "int8", cfg.ComputeType)
		assert.Equal(t, "transcribe", cfg.Task)
	})

	t.Run("null_language_stays_unset", func(t *testing.T) {
		path := writeConfig(t, `{"language": null}`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Language)
	})

	t.Run("vad_parameters_pass_through", func(t *testing.T) {
		path := writeConfig(t, `{"vad_parameters": {"min_silence_duration_ms": 500}}`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, float64(500), cfg.VADParameters["min_silence_duration_ms"])
	})

	t.Run("invalid_json_is_an_error", func(t *testing.T) {
		path := writeConfig(t, `{not json`)

		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		base      Transcription
		overrides Overrides
		check     func(t *testing.T, got Transcription)
	}{
		{
			name:      "empty_overrides_change_nothing",
			base:      Default(),
			overrides: Overrides{},
			check: func(t *testing.T, got Transcription) {
				assert.Equal(t, Default(), got)
			},
		},
		{
			name: "flag_wins_over_file_value",
			base: Transcription{ModelSize: "small", Device: "cpu", ComputeType: "int8", Task: "transcribe", BeamSize: 3},
			overrides: Overrides{
				ModelSize: strPtr("medium"),
				Device:    strPtr("cuda"),
			},
			check: func(t *testing.T, got Transcription) {
				assert.Equal(t, "medium", got.ModelSize)
				assert.Equal(t, "cuda", got.Device)
				// Unset flags leave file values intact.
				assert.Equal(t, 3, got.BeamSize)
				assert.Equal(t, "int8", got.ComputeType)
			},
		},
		{
			name: "explicit_false_override_applies",
			base: Transcription{VADFilter: true, WordTimestamps: true, Device: "cpu", Task: "transcribe", BeamSize: 5, ModelSize: "base", ComputeType: "int8"},
			overrides: Overrides{
				VADFilter:      boolPtr(false),
				WordTimestamps: boolPtr(false),
			},
			check: func(t *testing.T, got Transcription) {
				assert.False(t, got.VADFilter)
				assert.False(t, got.WordTimestamps)
			},
		},
		{
			name:      "beam_size_and_task_override",
			base:      Default(),
			overrides: Overrides{BeamSize: intPtr(8), Task: strPtr("translate"), Language: strPtr("zh"), ComputeType: strPtr("float16")},
			check: func(t *testing.T, got Transcription) {
				assert.Equal(t, 8, got.BeamSize)
				assert.Equal(t, "translate", got.Task)
				assert.Equal(t, "zh", got.Language)
				assert.Equal(t, "float16", got.ComputeType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.base.Apply(tt.overrides))
		})
	}
}

func TestLanguageHint(t *testing.T) {
	tests := []struct {
		name     string
		language string
		wantCode string
		wantOK   bool
	}{
		{name: "unset_means_detect", language: "", wantCode: "", wantOK: false},
		{name: "auto_means_detect", language: "auto", wantCode: "", wantOK: false},
		{name: "real_code_is_forced", language: "zh", wantCode: "zh", wantOK: true},
		{name: "english", language: "en", wantCode: "en", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Language = tt.language
			code, ok := cfg.LanguageHint()
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	assert.NoError(t, valid.Validate())

	badDevice := Default()
	badDevice.Device = "tpu"
	assert.Error(t, badDevice.Validate())

	badTask := Default()
	badTask.Task = "summarize"
	assert.Error(t, badTask.Validate())

	badBeam := Default()
	badBeam.BeamSize = 0
	assert.Error(t, badBeam.Validate())

	noModel := Default()
	noModel.ModelSize = ""
	assert.Error(t, noModel.Validate())
}
