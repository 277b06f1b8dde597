package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion tracks the newest migration in migrate.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/tears.db.
// The catalog is seeded with the builtin items on first run.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tears.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	// MkdirAll leaves existing dirs alone, so chmod separately (best-effort)
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)

	// Pragmas go in the DSN so every pooled connection picks them up
	dbPath := filepath.Join(baseDir, "tears.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	// First statement creates the db file if it does not exist yet
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Seed the builtin catalog on first run
	if err := seedIfEmpty(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies any non-zero pool limits from config after Init.
// Zero values keep the sql.DB defaults.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// 0 -> 1: initial schema
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS items (
		  id         TEXT PRIMARY KEY,
		  polarity   TEXT NOT NULL,
		  text       TEXT NOT NULL,
		  detail     TEXT NOT NULL DEFAULT '',
		  tags_json  TEXT,
		  priority   INTEGER NOT NULL,
		  builtin    INTEGER NOT NULL DEFAULT 0,
		  created_at INTEGER NOT NULL,
		  updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_items_priority_id
		ON items(priority, id);

		CREATE INDEX IF NOT EXISTS idx_items_polarity
		ON items(polarity, priority, id);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

// seedIfEmpty inserts the builtin catalog when the items table has no rows.
func seedIfEmpty(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := SeedDefaults(db)
	return err
}

// SeedDefaults inserts the builtin catalog in a single transaction and
// returns the number of seeded items. The seed is validated through
// catalog.New first so a broken builtin set fails loudly at startup
// rather than at suggestion time. Used on first run and by reset.
func SeedDefaults(db *sql.DB) (int, error) {
	seeded, err := catalog.New(catalog.Seed())
	if err != nil {
		return 0, fmt.Errorf("builtin catalog is invalid: %w", err)
	}

	now := time.Now().Unix()
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range seeded.Items() {
		item.Builtin = true
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := InsertItemTx(tx, item); err != nil {
			return 0, fmt.Errorf("failed to seed item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return seeded.Len(), nil
}

// verifyWALMode confirms the DSN pragma actually switched the journal to WAL.
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion reads the schema version from the user_version pragma.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion stores the schema version in the user_version pragma.
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
