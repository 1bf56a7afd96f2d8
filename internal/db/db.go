package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// EnvDBPath overrides the database location.
const EnvDBPath = "SEARCHOPS_DB"

var (
	db     *sql.DB
	dbOnce sync.Once
	dbErr  error
	dbPath string
)

// SetPath sets the database file used by GetDB. It has no effect once the
// connection is open.
func SetPath(path string) {
	dbPath = path
}

// GetDB returns the shared database connection, opening it on first use.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		var path string
		path, dbErr = GetDBPath()
		if dbErr != nil {
			return
		}
		db, dbErr = Open(path)
	})
	return db, dbErr
}

// Open opens the database at path, creating its directory and schema.
// Write transactions take the lock at BEGIN so that concurrent writers queue
// on the busy timeout instead of failing on upgrade.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", path)
	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		database.SetMaxOpenConns(1)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close closes the shared database connection.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// GetDBPath returns the path to the database file: the SetPath value, then
// $SEARCHOPS_DB, then ~/.searchops/searchops.db.
func GetDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".searchops", "searchops.db"), nil
}
