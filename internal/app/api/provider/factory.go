package provider

import (
	"fmt"

	"go.uber.org/zap"

	"whisper-skill/internal/app/api"
	"whisper-skill/internal/app/api/faster_whisper"
	openaiclient "whisper-skill/internal/app/api/openai"
	openaiwhisper "whisper-skill/internal/app/api/openai/whisper"
)

// NewTranscriber builds the engine named by the configuration.
// pythonPath is the interpreter the local engine should use; a
// python_path setting in the provider config overrides it.
func NewTranscriber(cfg *Configuration, pythonPath string, logger *zap.Logger) (api.Transcriber, error) {
	name := cfg.DefaultProvider
	settings := cfg.Settings(name)

	switch name {
	case FasterWhisper:
		if override, ok := StringSetting(settings, "python_path"); ok {
			pythonPath = override
		}
		return faster_whisper.NewEngine(pythonPath, logger), nil
	case OpenAI:
		return openaiwhisper.NewRemoteTranscriber(openaiclient.GetClient()), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider: %s", name)
	}
}
