package skill

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRun struct {
	calls [][]string
	fail  map[string]string // command name -> output to fail with
}

func (f *fakeRun) run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if out, ok := f.fail[name]; ok {
		return []byte(out), errors.New("exit status 1")
	}
	return nil, nil
}

func newTestEnv(t *testing.T) (*Environment, *fakeRun) {
	t.Helper()
	env := NewEnvironment(t.TempDir())
	env.Out = &bytes.Buffer{}
	fake := &fakeRun{}
	env.run = fake.run
	env.lookupEnv = func(string) (string, bool) { return "", false }
	return env, fake
}

func TestEnvironment_InVenv(t *testing.T) {
	env, _ := newTestEnv(t)

	env.lookupEnv = func(key string) (string, bool) {
		require.Equal(t, "VIRTUAL_ENV", key)
		return env.VenvDir, true
	}
	assert.True(t, env.InVenv())

	env.lookupEnv = func(string) (string, bool) { return "/some/other/venv", true }
	assert.False(t, env.InVenv())

	env.lookupEnv = func(string) (string, bool) { return "", false }
	assert.False(t, env.InVenv())
}

func TestEnvironment_Ensure(t *testing.T) {
	t.Run("already_in_venv_is_a_noop", func(t *testing.T) {
		env, fake := newTestEnv(t)
		env.lookupEnv = func(string) (string, bool) { return env.VenvDir, true }

		require.NoError(t, env.Ensure())
		assert.Empty(t, fake.calls)
	})

	t.Run("creates_venv_and_installs_requirements", func(t *testing.T) {
		env, fake := newTestEnv(t)
		writeFile(t, env.RequirementsFile, "faster-whisper>=1.0\n")

		require.NoError(t, env.Ensure())

		require.Len(t, fake.calls, 3)
		assert.Equal(t, []string{systemPython(), "-m", "venv", env.VenvDir}, fake.calls[0])
		assert.Equal(t, []string{env.Pip(), "install", "--upgrade", "pip"}, fake.calls[1])
		assert.Equal(t, []string{env.Pip(), "install", "-r", env.RequirementsFile}, fake.calls[2])
	})

	t.Run("skips_venv_creation_when_present", func(t *testing.T) {
		env, fake := newTestEnv(t)
		require.NoError(t, os.MkdirAll(env.VenvDir, 0o755))
		writeFile(t, env.RequirementsFile, "faster-whisper>=1.0\n")

		require.NoError(t, env.Ensure())

		require.Len(t, fake.calls, 2)
		assert.Equal(t, "install", fake.calls[0][1])
	})

	t.Run("missing_requirements_is_a_warning", func(t *testing.T) {
		env, fake := newTestEnv(t)

		require.NoError(t, env.Ensure())

		// Only venv creation ran; no pip calls.
		require.Len(t, fake.calls, 1)
		assert.Contains(t, env.Out.(*bytes.Buffer).String(), "No requirements.txt found")
	})

	t.Run("install_failure_carries_captured_output", func(t *testing.T) {
		env, fake := newTestEnv(t)
		writeFile(t, env.RequirementsFile, "faster-whisper>=1.0\n")
		fake.fail = map[string]string{env.Pip(): "ERROR: No matching distribution"}

		err := env.Ensure()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No matching distribution")
	})

	t.Run("venv_creation_failure_is_an_error", func(t *testing.T) {
		env, fake := newTestEnv(t)
		fake.fail = map[string]string{systemPython(): "venv module not found"}

		err := env.Ensure()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "venv module not found")
	})
}

func TestEnvironment_Python(t *testing.T) {
	env, _ := newTestEnv(t)

	// No venv yet: fall back to the system interpreter.
	assert.Equal(t, systemPython(), env.Python())

	if runtime.GOOS == "windows" {
		t.Skip("venv layout differs on windows")
	}

	venvPython := filepath.Join(env.VenvDir, "bin", "python")
	writeFile(t, venvPython, "#!/bin/sh\n")
	assert.Equal(t, venvPython, env.Python())
}
