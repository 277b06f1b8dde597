package ops

import (
	"context"
	"database/sql"

	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// ResetInput contains parameters for the Reset operation.
type ResetInput struct {
	Confirm bool // must be true; reset is destructive
}

// ResetOutput contains the result of the Reset operation.
type ResetOutput struct {
	Deleted int `json:"deleted"`
	Seeded  int `json:"seeded"`
}

// Reset deletes every stored item (builtin and custom) and reseeds the
// builtin catalog in its original form.
func Reset(ctx context.Context, database *sql.DB, input ResetInput) (*ResetOutput, error) {
	if !input.Confirm {
		return nil, errors.NewInvalidRequest("reset deletes all items; pass confirm to proceed")
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("reset")
	default:
	}

	deleted, err := db.DeleteAllItems(database)
	if err != nil {
		return nil, err
	}

	seeded, err := db.SeedDefaults(database)
	if err != nil {
		return nil, err
	}

	return &ResetOutput{Deleted: deleted, Seeded: seeded}, nil
}
