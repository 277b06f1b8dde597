package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	ID string // required

	// Editable fields (nil = don't change)
	Text     *string
	Detail   *string
	Tags     *[]string
	Priority *int
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	Item catalog.Item `json:"item"`
}

// Update modifies an existing item. ID and polarity are immutable;
// changing what an item means requires a delete and a new add.
// Builtin items may be edited, and reset restores their seed form.
func Update(ctx context.Context, database *sql.DB, cfg *config.Config, input UpdateInput) (*UpdateOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.Text == nil && input.Detail == nil && input.Tags == nil && input.Priority == nil {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	item, err := db.GetItem(database, catalog.Normalize(input.ID))
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, errors.NewInvalidRequest("text must not be empty")
		}
		item.Text = text
	}

	if input.Detail != nil {
		if cfg != nil && cfg.ItemMaxChars > 0 {
			if chars := catalog.CountChars(*input.Detail); chars > cfg.ItemMaxChars {
				return nil, errors.NewItemTooLarge(cfg.ItemMaxChars, chars)
			}
		}
		item.Detail = *input.Detail
	}

	if input.Tags != nil {
		item.Tags = catalog.NormalizeTags(*input.Tags)
	}

	if input.Priority != nil {
		item.Priority = *input.Priority
	}

	item.UpdatedAt = time.Now().Unix()

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("update")
	default:
	}

	if err := db.UpdateItem(database, item); err != nil {
		return nil, err
	}

	return &UpdateOutput{Item: item}, nil
}
