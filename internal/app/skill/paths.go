// Package skill handles installation of the skill files and the private
// Python environment the transcription engine runs in.
package skill

import (
	"os"
	"path/filepath"
)

// Name is the skill's directory name under the skills root.
const Name = "faster-whisper"

// Dir returns the user-specific installation directory,
// ~/.claude/skills/faster-whisper.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "skills", Name), nil
}
