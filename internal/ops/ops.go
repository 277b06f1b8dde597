package ops

import (
	"strings"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	MaxQueryLength     = 200
	DefaultPriority    = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// clampLimit applies default and max bounds to a requested page size.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// parsePolarityFilter parses an optional polarity filter string.
// nil or empty means no filter.
func parsePolarityFilter(s *string) (*catalog.Polarity, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	p, ok := catalog.ParsePolarity(*s)
	if !ok {
		return nil, errors.NewInvalidRequest("polarity must be one of: do, dont")
	}
	return &p, nil
}

// cleanOptionalString trims an optional string, returning nil if empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
