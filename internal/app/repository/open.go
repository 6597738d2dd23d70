package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"whisper-skill/internal/app/repository/pg"
	"whisper-skill/internal/app/repository/sqlite"
)

// Environment variables selecting the history backend.
const (
	EnvBackend = "WSKILL_DB"
	EnvPgDSN   = "WSKILL_PG_DSN"
)

// Open returns the run history store. SQLite in the skill directory is
// the default; WSKILL_DB=postgres switches to PostgreSQL with the DSN
// from WSKILL_PG_DSN.
func Open(skillDir string) (RunDAO, error) {
	if os.Getenv(EnvBackend) == "postgres" {
		dsn := os.Getenv(EnvPgDSN)
		if dsn == "" {
			return nil, fmt.Errorf("%s=postgres requires %s to be set", EnvBackend, EnvPgDSN)
		}
		return pg.NewPostgresDB(dsn)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return nil, fmt.Errorf("create skill directory: %w", err)
	}
	return sqlite.NewSQLiteDB(filepath.Join(skillDir, "history.db"))
}
