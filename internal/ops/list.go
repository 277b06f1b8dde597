package ops

import (
	"context"
	"database/sql"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Polarity *string // optional filter: "do" or "dont"
	Tag      *string // optional filter by tag
	Limit    int     // default: 20, max: 100
	Offset   int     // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []catalog.Summary `json:"items"`
	Pagination Pagination        `json:"pagination"`
	Sort       string            `json:"sort"`
}

// List retrieves item summaries with optional filters and pagination.
// Results are ordered the way the engine orders them (priority asc, id asc).
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	polarity, err := parsePolarityFilter(input.Polarity)
	if err != nil {
		return nil, err
	}

	var tag *string
	if cleaned := cleanOptionalString(input.Tag); cleaned != nil {
		normalized := catalog.Normalize(*cleaned)
		tag = &normalized
	}

	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)

	summaries, total, err := db.ListItems(database, polarity, tag, limit, offset)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []catalog.Summary{}
	}

	hasMore := offset+len(summaries) < total

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "priority_asc_id_asc",
	}, nil
}
