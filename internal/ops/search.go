package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/errors"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query    string  // required
	Polarity *string // optional filter
	Limit    int     // default: 20, max: 100
	Offset   int     // default: 0
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items      []catalog.Summary `json:"items"`
	Pagination Pagination        `json:"pagination"`
	Sort       string            `json:"sort"`
}

// Search performs a case-insensitive substring search over item text and
// detail. Results keep engine order so search output reads like the catalog.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}

	polarity, err := parsePolarityFilter(input.Polarity)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)
	offset := max(input.Offset, 0)

	summaries, total, err := db.SearchItems(ctx, database, query, polarity, limit, offset)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []catalog.Summary{}
	}

	hasMore := offset+len(summaries) < total

	return &SearchOutput{
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
