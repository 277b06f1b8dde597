package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on collision (atomic)
	ImportModeReplace ImportMode = "replace" // overwrite on collision
	ImportModeSkip    ImportMode = "skip"    // keep existing on collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError represents an error that occurred during import.
type ImportError struct {
	Line    int    `json:"line,omitempty"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import reads items from a JSONL export file.
func Import(ctx context.Context, database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace && input.Mode != ImportModeSkip {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace, skip")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if _, ok := err.(*errors.TearsError); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	items, parseErrors := parseExportFile(file, cfg)

	// For mode:error, any parse error aborts the whole import
	if input.Mode == ImportModeError && len(parseErrors) > 0 {
		return &ImportOutput{Errors: parseErrors}, nil
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("import")
	default:
	}

	switch input.Mode {
	case ImportModeError:
		return importModeError(database, items)
	case ImportModeReplace:
		return importModeReplace(database, items, parseErrors)
	default:
		return importModeSkip(database, items, parseErrors)
	}
}

// parseExportFile parses a JSONL export file into items, validating each
// record the same way Add validates user input.
func parseExportFile(file *os.File, cfg *config.Config) ([]catalog.Item, []ImportError) {
	var items []catalog.Item
	var parseErrors []ImportError

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		var record catalog.ExportRecord
		if err := json.Unmarshal(line, &record); err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		// Skip header line
		if record.TearsExport {
			continue
		}

		item := record.ToItem()
		if reason := validateImportItem(item, cfg); reason != "" {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				ID:      item.ID,
				Code:    "INVALID_RECORD",
				Message: reason,
			})
			continue
		}

		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		parseErrors = append(parseErrors, ImportError{
			Line:    lineNum,
			Code:    "READ_ERROR",
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
	}

	return items, parseErrors
}

// validateImportItem returns a rejection reason, or "" when the item is valid.
func validateImportItem(item catalog.Item, cfg *config.Config) string {
	if item.ID == "" {
		return "missing id field"
	}
	if item.Text == "" {
		return "missing text field"
	}
	if item.Polarity != catalog.Do && item.Polarity != catalog.Dont {
		return fmt.Sprintf("invalid polarity %q", item.Polarity)
	}
	if cfg != nil && cfg.ItemMaxChars > 0 {
		if chars := catalog.CountChars(item.Detail); chars > cfg.ItemMaxChars {
			return fmt.Sprintf("detail exceeds maximum size: %d chars (max %d)", chars, cfg.ItemMaxChars)
		}
	}
	return ""
}

// importModeError imports all items atomically, aborting on any collision.
func importModeError(database *sql.DB, items []catalog.Item) (*ImportOutput, error) {
	for _, item := range items {
		exists, err := db.ItemExists(database, item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return &ImportOutput{
				Errors: []ImportError{{
					ID:      item.ID,
					Code:    "ID_COLLISION",
					Message: fmt.Sprintf("item with id %q already exists", item.ID),
				}},
			}, nil
		}
	}

	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	imported := 0
	for _, item := range items {
		if err := db.InsertItemTx(tx, item); err != nil {
			return nil, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ImportOutput{Imported: imported}, nil
}

// importModeReplace imports items, overwriting existing on collision.
func importModeReplace(database *sql.DB, items []catalog.Item, parseErrors []ImportError) (*ImportOutput, error) {
	imported := 0
	for _, item := range items {
		if err := db.ReplaceItem(database, item); err != nil {
			return nil, err
		}
		imported++
	}

	return &ImportOutput{
		Imported: imported,
		Skipped:  len(parseErrors),
		Errors:   parseErrors,
	}, nil
}

// importModeSkip imports items, keeping the existing item on collision.
func importModeSkip(database *sql.DB, items []catalog.Item, parseErrors []ImportError) (*ImportOutput, error) {
	imported := 0
	skipped := len(parseErrors)

	for _, item := range items {
		err := db.InsertItem(database, item)
		if err == db.ErrUniqueConstraint {
			skipped++
			continue
		}
		if err != nil {
			return nil, err
		}
		imported++
	}

	return &ImportOutput{
		Imported: imported,
		Skipped:  skipped,
		Errors:   parseErrors,
	}, nil
}
