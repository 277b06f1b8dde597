package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	ID       string // optional; a ULID is generated when empty
	Polarity string // required: "do" or "dont"
	Text     string // required
	Detail   string
	Tags     []string
	Priority *int // default: DefaultPriority
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	Item catalog.Item `json:"item"`
}

// Add stores a new custom catalog item.
func Add(ctx context.Context, database *sql.DB, cfg *config.Config, input AddInput) (*AddOutput, error) {
	polarity, ok := catalog.ParsePolarity(input.Polarity)
	if !ok {
		return nil, errors.NewInvalidRequest("polarity must be one of: do, dont")
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}

	if cfg != nil && cfg.ItemMaxChars > 0 {
		if chars := catalog.CountChars(input.Detail); chars > cfg.ItemMaxChars {
			return nil, errors.NewItemTooLarge(cfg.ItemMaxChars, chars)
		}
	}

	id := catalog.Normalize(input.ID)
	if id == "" {
		generated, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		id = catalog.Normalize(generated)
	}

	priority := DefaultPriority
	if input.Priority != nil {
		priority = *input.Priority
	}

	now := time.Now().Unix()
	item := catalog.Item{
		ID:        id,
		Polarity:  polarity,
		Text:      text,
		Detail:    input.Detail,
		Tags:      catalog.NormalizeTags(input.Tags),
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("add")
	default:
	}

	if err := db.InsertItem(database, item); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewIDAlreadyExists(id)
		}
		return nil, err
	}

	return &AddOutput{Item: item}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
