// Package provider selects and constructs the transcription engine from
// an optional YAML configuration file.
package provider

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider names usable in the configuration file.
const (
	FasterWhisper = "faster_whisper"
	OpenAI        = "openai"
)

// Configuration is the on-disk provider configuration.
type Configuration struct {
	// DefaultProvider names the engine to use when none is specified.
	DefaultProvider string `yaml:"default_provider"`

	// Providers holds provider-specific settings maps.
	Providers map[string]map[string]any `yaml:"providers"`
}

// DefaultConfiguration selects the local faster-whisper engine.
func DefaultConfiguration() *Configuration {
	return &Configuration{DefaultProvider: FasterWhisper}
}

// LoadConfiguration reads the provider configuration from path. A missing
// file yields the default configuration.
func LoadConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfiguration(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read provider config %s: %w", path, err)
	}

	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse provider config %s: %w", path, err)
	}
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = FasterWhisper
	}
	return &cfg, nil
}

// Settings returns the settings map for the named provider, never nil.
func (c *Configuration) Settings(name string) map[string]any {
	if s, ok := c.Providers[name]; ok && s != nil {
		return s
	}
	return map[string]any{}
}

// StringSetting reads a string value from a settings map.
func StringSetting(settings map[string]any, key string) (string, bool) {
	v, ok := settings[key].(string)
	return v, ok && v != ""
}
