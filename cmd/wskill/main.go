package main

import (
	"fmt"
	"os"

	"whisper-skill/cmd/wskill/cmd"
	"whisper-skill/internal/config"
)

func main() {
	// Load .env if present. Only the remote engine needs a key, so a
	// missing or malformed one must not block local transcription.
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
