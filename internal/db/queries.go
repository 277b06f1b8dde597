package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.TearsError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// itemColumns is the column list shared by all item SELECTs.
const itemColumns = `id, polarity, text, detail, tags_json, priority, builtin, created_at, updated_at`

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

// InsertItem stores a new item in the database.
func InsertItem(db *sql.DB, item catalog.Item) error {
	return insertItem(db, item)
}

// execer abstracts *sql.DB and *sql.Tx for inserts.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// InsertItemTx inserts within a transaction (used for seeding and import).
func InsertItemTx(tx *sql.Tx, item catalog.Item) error {
	return insertItem(tx, item)
}

func insertItem(e execer, item catalog.Item) error {
	tagsJSON, err := marshalTags(item.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO items (
			id, polarity, text, detail, tags_json,
			priority, builtin, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = e.Exec(query,
		item.ID, string(item.Polarity), item.Text, item.Detail, tagsJSON,
		item.Priority, boolToInt(item.Builtin), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// ReplaceItem overwrites an existing item (or inserts if absent).
// Used by import in replace mode.
func ReplaceItem(db *sql.DB, item catalog.Item) error {
	tagsJSON, err := marshalTags(item.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO items (
			id, polarity, text, detail, tags_json,
			priority, builtin, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			polarity = excluded.polarity,
			text = excluded.text,
			detail = excluded.detail,
			tags_json = excluded.tags_json,
			priority = excluded.priority,
			builtin = excluded.builtin,
			updated_at = excluded.updated_at
	`

	_, err = db.Exec(query,
		item.ID, string(item.Polarity), item.Text, item.Detail, tagsJSON,
		item.Priority, boolToInt(item.Builtin), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetItem retrieves an item by its normalized ID.
func GetItem(db *sql.DB, id string) (catalog.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	row := db.QueryRow(query, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return catalog.Item{}, errors.NewNotFound(id)
	}
	if err != nil {
		return catalog.Item{}, errors.NewInternal(err)
	}

	return item, nil
}

// ItemExists checks whether an item with the given ID is stored.
func ItemExists(db *sql.DB, id string) (bool, error) {
	var exists int
	err := db.QueryRow("SELECT 1 FROM items WHERE id = ? LIMIT 1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// UpdateItem updates mutable fields of an existing item.
// Does NOT change: id, polarity, builtin, created_at.
func UpdateItem(db *sql.DB, item catalog.Item) error {
	tagsJSON, err := marshalTags(item.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		UPDATE items
		SET text = ?, detail = ?, tags_json = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := db.Exec(query,
		item.Text, item.Detail, tagsJSON, item.Priority, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(item.ID)
	}

	return nil
}

// DeleteItem permanently removes an item.
func DeleteItem(db *sql.DB, id string) error {
	result, err := db.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// DeleteAllItems removes every item. Used by reset before reseeding.
// Returns the number of deleted rows.
func DeleteAllItems(db *sql.DB) (int, error) {
	result, err := db.Exec("DELETE FROM items")
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}

// LoadAllItems returns every stored item in engine order (priority, id).
// This is the catalog load path: callers validate via catalog.New.
func LoadAllItems(db *sql.DB) ([]catalog.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY priority, id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return items, nil
}

// ListItems returns item summaries filtered by polarity and/or tag, with
// pagination. Tag filtering happens in Go because tags are stored as JSON.
func ListItems(db *sql.DB, polarity *catalog.Polarity, tag *string, limit, offset int) ([]catalog.Summary, int, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if polarity != nil {
		query += " WHERE polarity = ?"
		args = append(args, string(*polarity))
	}
	query += " ORDER BY priority, id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var matched []catalog.Summary
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		if tag != nil && !item.HasTag(*tag) {
			continue
		}
		matched = append(matched, item.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	total := len(matched)
	page := paginate(matched, limit, offset)
	return page, total, nil
}

// SearchItems returns summaries whose text or detail contains the query,
// case-insensitive, ordered like the engine orders results.
func SearchItems(ctx context.Context, db *sql.DB, query string, polarity *catalog.Polarity, limit, offset int) ([]catalog.Summary, int, error) {
	sqlQuery := `
		SELECT ` + itemColumns + ` FROM items
		WHERE (text LIKE ? ESCAPE '\' OR detail LIKE ? ESCAPE '\')
	`
	pattern := "%" + escapeLike(query) + "%"
	args := []any{pattern, pattern}
	if polarity != nil {
		sqlQuery += " AND polarity = ?"
		args = append(args, string(*polarity))
	}
	sqlQuery += " ORDER BY priority, id"

	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var matched []catalog.Summary
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		matched = append(matched, item.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	total := len(matched)
	page := paginate(matched, limit, offset)
	return page, total, nil
}

// StreamForExport returns rows over all items for streaming export.
// Callers must Close the rows and scan with ScanItemFromRows.
func StreamForExport(ctx context.Context, db *sql.DB, polarity *catalog.Polarity) (*sql.Rows, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if polarity != nil {
		query += " WHERE polarity = ?"
		args = append(args, string(*polarity))
	}
	query += " ORDER BY priority, id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rows, nil
}

// ScanItemFromRows scans the current row into an Item.
func ScanItemFromRows(rows *sql.Rows) (catalog.Item, error) {
	return scanItem(rows)
}

// CountItems returns the total number of stored items.
func CountItems(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// scanItem scans a row into an Item.
func scanItem(s scanner) (catalog.Item, error) {
	var (
		item     catalog.Item
		polarity string
		tagsJSON sql.NullString
		builtin  int
	)

	err := s.Scan(
		&item.ID, &polarity, &item.Text, &item.Detail, &tagsJSON,
		&item.Priority, &builtin, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return catalog.Item{}, err
	}

	item.Polarity = catalog.Polarity(polarity)
	item.Builtin = builtin != 0
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Tags); err != nil {
			return catalog.Item{}, err
		}
	}

	return item, nil
}

// marshalTags converts a tag slice to a nullable JSON string.
func marshalTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// paginate slices a result window out of matched rows.
func paginate(matched []catalog.Summary, limit, offset int) []catalog.Summary {
	if offset >= len(matched) {
		return []catalog.Summary{}
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

// escapeLike escapes LIKE wildcards in user queries.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// boolToInt converts a bool to the 0/1 form SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
