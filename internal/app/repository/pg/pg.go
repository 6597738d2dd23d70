package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"whisper-skill/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	audio_file TEXT NOT NULL,
	model_size TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	language_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
	duration DOUBLE PRECISION NOT NULL DEFAULT 0,
	format TEXT NOT NULL DEFAULT '',
	output_path TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	has_error BOOLEAN NOT NULL DEFAULT FALSE,
	error_message TEXT NOT NULL DEFAULT ''
);`

// PostgresDB stores run history in PostgreSQL, for setups sharing one
// history across machines.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB connects using the given DSN and ensures the schema.
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// newWithDB wraps an existing connection, used by unit tests.
func newWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) Record(run model.Run) error {
	insertSQL := `INSERT INTO runs (id, audio_file, model_size, language, language_probability, duration, format, output_path, created_at, has_error, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := pdb.db.Exec(insertSQL,
		run.ID, run.AudioFile, run.ModelSize, run.Language, run.LanguageProbability,
		run.Duration, run.Format, run.OutputPath, run.CreatedAt, run.HasError, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Recent(limit int) ([]model.Run, error) {
	query := `
		SELECT id, audio_file, model_size, language, language_probability,
		       duration, format, output_path, created_at, has_error, error_message
		FROM runs
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := pdb.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]model.Run, 0)
	for rows.Next() {
		var r model.Run
		err := rows.Scan(&r.ID, &r.AudioFile, &r.ModelSize, &r.Language, &r.LanguageProbability,
			&r.Duration, &r.Format, &r.OutputPath, &r.CreatedAt, &r.HasError, &r.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return runs, nil
}
