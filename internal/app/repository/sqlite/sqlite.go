package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"whisper-skill/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	audio_file TEXT NOT NULL,
	model_size TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	language_probability REAL NOT NULL DEFAULT 0,
	duration REAL NOT NULL DEFAULT 0,
	format TEXT NOT NULL DEFAULT '',
	output_path TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);`

// SQLiteDB stores run history in a local SQLite database file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the history database at the
// given path.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Record(run model.Run) error {
	insertSQL := `INSERT INTO runs (id, audio_file, model_size, language, language_probability, duration, format, output_path, created_at, has_error, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL,
		run.ID, run.AudioFile, run.ModelSize, run.Language, run.LanguageProbability,
		run.Duration, run.Format, run.OutputPath, run.CreatedAt, boolToInt(run.HasError), run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) Recent(limit int) ([]model.Run, error) {
	query := `
		SELECT id, audio_file, model_size, language, language_probability,
		       duration, format, output_path, created_at, has_error, error_message
		FROM runs
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]model.Run, error) {
	runs := make([]model.Run, 0)
	for rows.Next() {
		var r model.Run
		var hasError int
		err := rows.Scan(&r.ID, &r.AudioFile, &r.ModelSize, &r.Language, &r.LanguageProbability,
			&r.Duration, &r.Format, &r.OutputPath, &r.CreatedAt, &hasError, &r.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.HasError = hasError != 0
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
