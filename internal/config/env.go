package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one exists.
// Not finding one is fine: the environment may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// OpenAIKey returns the OpenAI API key from the environment, validating
// its basic shape. An empty string with nil error means no key is set.
func OpenAIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return "", nil
	}
	if !strings.HasPrefix(key, "sk-") {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	if len(key) < 20 {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: too short")
	}
	return key, nil
}
