package app

import (
	"log"
	"path/filepath"

	"go.uber.org/zap"

	"whisper-skill/internal/app/api"
	"whisper-skill/internal/app/api/provider"
	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/app/skill"
	"whisper-skill/internal/app/util/logger"
)

func provideLogger(verbose bool) *zap.Logger {
	return logger.MustNew(verbose)
}

// provideTranscriber builds the engine selected by the optional
// providers.yaml in the skill directory; the default is faster-whisper
// running in the skill's venv.
func provideTranscriber(log_ *zap.Logger) api.Transcriber {
	skillDir, err := skill.Dir()
	if err != nil {
		log.Fatalf("Failed to resolve skill directory: %v\n", err)
	}

	cfg, err := provider.LoadConfiguration(filepath.Join(skillDir, "providers.yaml"))
	if err != nil {
		log.Fatalf("Failed to load provider configuration: %v\n", err)
	}

	env := skill.NewEnvironment(skillDir)
	transcriber, err := provider.NewTranscriber(cfg, env.Python(), log_)
	if err != nil {
		log.Fatalf("Failed to initialize transcription engine: %v\n", err)
	}
	return transcriber
}

func provideRunDAO() repository.RunDAO {
	skillDir, err := skill.Dir()
	if err != nil {
		log.Fatalf("Failed to resolve skill directory: %v\n", err)
	}

	dao, err := repository.Open(skillDir)
	if err != nil {
		log.Fatalf("Failed to open run history: %v\n", err)
	}
	return dao
}
