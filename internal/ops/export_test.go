package ops

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/errors"
)

// exportConfig allows the test temp dir as an export target.
func exportConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{dir}
	return cfg
}

func TestExport_HappyPath(t *testing.T) {
	database := setupDB(t)
	tmpDir := t.TempDir()
	cfg := exportConfig(tmpDir)

	exportPath := filepath.Join(tmpDir, "export.jsonl")
	out, err := Export(context.Background(), database, cfg, ExportInput{Path: exportPath})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if out.Path != exportPath {
		t.Errorf("Path = %q, want %q", out.Path, exportPath)
	}
	if out.Count != len(catalog.Seed()) {
		t.Errorf("Count = %d, want %d", out.Count, len(catalog.Seed()))
	}

	file, err := os.Open(exportPath)
	if err != nil {
		t.Fatalf("open export failed: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatal("export file is empty")
	}

	var header ExportHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		t.Fatalf("header parse failed: %v", err)
	}
	if !header.TearsExport || header.SchemaVersion != "1.0" {
		t.Errorf("header = %+v", header)
	}

	lines := 0
	for scanner.Scan() {
		lines++
		var record catalog.ExportRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("record parse failed at line %d: %v", lines, err)
		}
		if record.ID == "" || record.Polarity == "" {
			t.Errorf("line %d missing fields: %+v", lines, record)
		}
	}
	if lines != out.Count {
		t.Errorf("record lines = %d, want %d", lines, out.Count)
	}
}

func TestExport_PolarityFilter(t *testing.T) {
	database := setupDB(t)
	tmpDir := t.TempDir()
	cfg := exportConfig(tmpDir)

	exportPath := filepath.Join(tmpDir, "donts.jsonl")
	out, err := Export(context.Background(), database, cfg, ExportInput{
		Path:     exportPath,
		Polarity: stringPtr("dont"),
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count == 0 || out.Count == len(catalog.Seed()) {
		t.Errorf("Count = %d, want a strict subset", out.Count)
	}
}

func TestExport_PathValidation(t *testing.T) {
	database := setupDB(t)
	tmpDir := t.TempDir()
	cfg := exportConfig(tmpDir)

	// Wrong extension
	_, err := Export(context.Background(), database, cfg, ExportInput{
		Path: filepath.Join(tmpDir, "export.txt"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad extension error = %v, want INVALID_REQUEST", err)
	}

	// Traversal
	_, err = Export(context.Background(), database, cfg, ExportInput{
		Path: filepath.Join(tmpDir, "..", "escape.jsonl"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("traversal error = %v, want INVALID_REQUEST", err)
	}

	// Subdirectory of an allowed dir is still rejected
	sub := filepath.Join(tmpDir, "nested")
	if err := os.MkdirAll(sub, 0700); err != nil {
		t.Fatal(err)
	}
	_, err = Export(context.Background(), database, cfg, ExportInput{
		Path: filepath.Join(sub, "export.jsonl"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("subdirectory error = %v, want INVALID_REQUEST", err)
	}
}

func TestExport_PreservesExistingFileOnOverwrite(t *testing.T) {
	database := setupDB(t)
	tmpDir := t.TempDir()
	cfg := exportConfig(tmpDir)

	exportPath := filepath.Join(tmpDir, "twice.jsonl")
	if _, err := Export(context.Background(), database, cfg, ExportInput{Path: exportPath}); err != nil {
		t.Fatalf("first Export failed: %v", err)
	}
	// Second export overwrites atomically
	if _, err := Export(context.Background(), database, cfg, ExportInput{Path: exportPath}); err != nil {
		t.Fatalf("second Export failed: %v", err)
	}

	// No leftover temp files
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
