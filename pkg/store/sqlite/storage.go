package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const transactionsSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'expense',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NULL
	);
`

var bootQueries = []string{
	transactionsSchema,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date);`,
}

type Settings struct {
	DbPath string // file path or ":memory:"
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// modernc sqlite is single-writer; one connection avoids lock contention
	// and keeps :memory: databases visible to every caller.
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("run boot query: %w", err)
		}
	}
	return db, nil
}
