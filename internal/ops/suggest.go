package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/engine"
	"github.com/azriel91/tears/internal/errors"
)

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	Trust string   // optional: "absent" or "present"
	Mood  string   // optional: mood name ("cautious") or rank ("3")
	Tags  []string // optional: extra context tags
}

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	Context []string       `json:"context"`
	Do      []catalog.Item `json:"do"`
	Dont    []catalog.Item `json:"dont"`
}

// Suggest loads the stored catalog, builds a context from the input, and
// returns the matching do/don't items in rank order.
//
// An empty input is valid: with no tags selected, only universally
// applicable items are returned.
func Suggest(ctx context.Context, database *sql.DB, input SuggestInput) (*SuggestOutput, error) {
	sctx, err := buildContext(input)
	if err != nil {
		return nil, err
	}

	items, err := loadCatalog(database)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("suggest")
	default:
	}

	result := engine.Select(items, sctx)
	return &SuggestOutput{
		Context: sctx.Tags(),
		Do:      emptyIfNil(result.Do),
		Dont:    emptyIfNil(result.Dont),
	}, nil
}

// buildContext assembles the engine context from trust, mood, and free tags.
func buildContext(input SuggestInput) (engine.Context, error) {
	tags := append([]string{}, input.Tags...)

	if input.Trust != "" {
		trust, ok := catalog.ParseTrust(input.Trust)
		if !ok {
			return engine.Context{}, errors.NewInvalidRequest(
				fmt.Sprintf("unknown trust level %q (use absent or present)", input.Trust))
		}
		tags = append(tags, trust.Tag())
	}

	if input.Mood != "" {
		mood, err := parseMoodArg(input.Mood)
		if err != nil {
			return engine.Context{}, err
		}
		tags = append(tags, mood.Tag())
	}

	return engine.NewContext(tags...), nil
}

// parseMoodArg accepts a mood name or a 1-6 rank.
func parseMoodArg(s string) (catalog.Mood, error) {
	if m, ok := catalog.ParseMood(s); ok {
		return m, nil
	}
	var rank int
	if _, err := fmt.Sscanf(s, "%d", &rank); err == nil {
		if m, ok := catalog.MoodFromRank(rank); ok {
			return m, nil
		}
	}
	return 0, errors.NewInvalidRequest(
		fmt.Sprintf("unknown mood %q (use a name like cautious, or a rank 1-6)", s))
}

// loadCatalog loads and validates the full stored catalog.
// A catalog that fails validation is a data error and selection must not run.
func loadCatalog(database *sql.DB) ([]catalog.Item, error) {
	items, err := db.LoadAllItems(database)
	if err != nil {
		return nil, err
	}
	validated, err := catalog.New(items)
	if err != nil {
		return nil, errors.NewCatalogInvalid(err)
	}
	return validated.Items(), nil
}

// emptyIfNil ensures JSON output carries [] rather than null.
func emptyIfNil(items []catalog.Item) []catalog.Item {
	if items == nil {
		return []catalog.Item{}
	}
	return items
}
