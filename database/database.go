package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sqlite "modernc.org/sqlite"
)

type Database struct {
	logger *slog.Logger
	read   *sql.DB
	write  *sql.DB
	path   string
}

const initSQL = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;
	PRAGMA busy_timeout = 5000;
	PRAGMA automatic_index = true;
	PRAGMA foreign_keys = ON;
	PRAGMA analysis_limit = 1000;
	PRAGMA trusted_schema = OFF;
`

// New opens separate read and write pools against the same sqlite file.
// Inspired by: https://theitsolutions.io/blog/modernc.org-sqlite-with-go
func New(ctx context.Context, path string) (*Database, error) {
	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		_, err := conn.ExecContext(ctx, initSQL, nil)
		return err
	})

	read, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error when opening database (read): %w", err)
	}
	read.SetMaxOpenConns(10) // readers can be concurrent
	read.SetConnMaxIdleTime(time.Minute)

	write, err := sql.Open("sqlite", path)
	if err != nil {
		read.Close()
		return nil, fmt.Errorf("error when opening database (write): %w", err)
	}
	write.SetMaxOpenConns(1) // only a single writer ever, no concurrency
	write.SetConnMaxIdleTime(time.Minute)

	d := &Database{
		logger: slog.Default().With(slog.String("module", "database")),
		read:   read,
		write:  write,
		path:   path,
	}

	if err := migrate(ctx, d.write); err != nil {
		read.Close()
		write.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return d, nil
}

func (d *Database) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Database) Close() {
	d.read.Close()
	d.write.Close()
}
