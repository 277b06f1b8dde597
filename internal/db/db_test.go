package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
)

func TestInit_CreatesAndSeeds(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	count, err := CountItems(database)
	if err != nil {
		t.Fatalf("CountItems failed: %v", err)
	}
	if count != len(catalog.Seed()) {
		t.Errorf("seeded count = %d, want %d", count, len(catalog.Seed()))
	}

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_SeedsAreBuiltin(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	items, err := LoadAllItems(database)
	if err != nil {
		t.Fatalf("LoadAllItems failed: %v", err)
	}
	for _, item := range items {
		if !item.Builtin {
			t.Errorf("seeded item %s not marked builtin", item.ID)
		}
		if item.CreatedAt == 0 || item.UpdatedAt == 0 {
			t.Errorf("seeded item %s missing timestamps", item.ID)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	database.Close()

	// Re-open: must not reseed or migrate again
	database, err = Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer database.Close()

	count, err := CountItems(database)
	if err != nil {
		t.Fatalf("CountItems failed: %v", err)
	}
	if count != len(catalog.Seed()) {
		t.Errorf("count after reopen = %d, want %d (no double seed)", count, len(catalog.Seed()))
	}
}

func TestInit_CreatesExportsDir(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	exportsDir := filepath.Join(tmpDir, "exports")
	if !dirExists(exportsDir) {
		t.Errorf("exports directory %s not created", exportsDir)
	}
}

func TestConfigurePool(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	// Must not panic with nil config, and must accept limits
	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})

	if got := database.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
