package skill

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment manages the skill-specific Python virtual environment that
// faster-whisper is installed into.
type Environment struct {
	SkillDir         string
	VenvDir          string
	RequirementsFile string

	Out io.Writer

	// run executes a command and returns its combined output. Tests
	// replace it; the default shells out.
	run func(name string, args ...string) ([]byte, error)

	// lookupEnv resolves environment variables, replaceable in tests.
	lookupEnv func(string) (string, bool)
}

// NewEnvironment creates an Environment rooted at the skill directory.
func NewEnvironment(skillDir string) *Environment {
	return &Environment{
		SkillDir:         skillDir,
		VenvDir:          filepath.Join(skillDir, ".venv"),
		RequirementsFile: filepath.Join(skillDir, "requirements.txt"),
		Out:              os.Stdout,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
		lookupEnv: os.LookupEnv,
	}
}

// Python returns the interpreter to use: the venv's python when it
// exists, the system interpreter otherwise.
func (e *Environment) Python() string {
	venvPython := e.venvBinary("python")
	if _, err := os.Stat(venvPython); err == nil {
		return venvPython
	}
	return systemPython()
}

// Pip returns the venv's pip executable path.
func (e *Environment) Pip() string {
	return e.venvBinary("pip")
}

func (e *Environment) venvBinary(name string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.VenvDir, "Scripts", name+".exe")
	}
	return filepath.Join(e.VenvDir, "bin", name)
}

func systemPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// InVenv reports whether the current process already runs inside the
// skill's virtual environment.
func (e *Environment) InVenv() bool {
	active, ok := e.lookupEnv("VIRTUAL_ENV")
	if !ok || active == "" {
		return false
	}
	return filepath.Clean(active) == filepath.Clean(e.VenvDir)
}

// Ensure makes the environment ready: create the venv if missing, then
// install/upgrade dependencies from the requirements file. Subprocess
// failures are returned with their captured output. Idempotent.
func (e *Environment) Ensure() error {
	if e.InVenv() {
		fmt.Fprintln(e.Out, "✅ Already running in skill virtual environment")
		return nil
	}

	if _, err := os.Stat(e.VenvDir); os.IsNotExist(err) {
		fmt.Fprintf(e.Out, "🔧 Creating virtual environment in %s/\n", filepath.Base(e.VenvDir))
		if out, err := e.run(systemPython(), "-m", "venv", e.VenvDir); err != nil {
			return fmt.Errorf("failed to create venv: %w\n%s", err, strings.TrimSpace(string(out)))
		}
		fmt.Fprintln(e.Out, "✅ Virtual environment created")
	}

	if _, err := os.Stat(e.RequirementsFile); os.IsNotExist(err) {
		fmt.Fprintln(e.Out, "⚠️ No requirements.txt found, skipping dependency installation")
		return nil
	}

	fmt.Fprintln(e.Out, "📦 Installing dependencies...")
	if out, err := e.run(e.Pip(), "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("failed to upgrade pip: %w\n%s", err, strings.TrimSpace(string(out)))
	}
	if out, err := e.run(e.Pip(), "install", "-r", e.RequirementsFile); err != nil {
		return fmt.Errorf("failed to install dependencies: %w\n%s", err, strings.TrimSpace(string(out)))
	}

	fmt.Fprintln(e.Out, "✅ Dependencies installed (faster-whisper ready)")
	return nil
}
