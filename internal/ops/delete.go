package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string // required
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete permanently removes a custom item. Builtin items cannot be
// deleted; use reset to restore the seed catalog instead.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	id := catalog.Normalize(input.ID)

	item, err := db.GetItem(database, id)
	if err != nil {
		return nil, err
	}
	if item.Builtin {
		return nil, errors.NewInvalidRequest("builtin items cannot be deleted (use reset to restore defaults)")
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("delete")
	default:
	}

	if err := db.DeleteItem(database, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{Deleted: true, ID: id}, nil
}
