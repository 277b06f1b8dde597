package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID string // required
}

// GetOutput contains the result of the Get operation.
type GetOutput struct {
	Item catalog.Item `json:"item"`
}

// Get retrieves a single item by ID.
func Get(ctx context.Context, database *sql.DB, input GetInput) (*GetOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	item, err := db.GetItem(database, catalog.Normalize(input.ID))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Item: item}, nil
}
