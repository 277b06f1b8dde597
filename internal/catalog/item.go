package catalog

// Polarity classifies a suggestion as a recommended action ("do") or a
// discouraged one ("dont").
type Polarity string

const (
	Do   Polarity = "do"
	Dont Polarity = "dont"
)

// ParsePolarity parses a polarity string. Input is normalized first, so
// " Do " and "dont" both parse.
func ParsePolarity(s string) (Polarity, bool) {
	switch Polarity(Normalize(s)) {
	case Do:
		return Do, true
	case Dont:
		return Dont, true
	}
	return "", false
}

// Item is one entry in the suggestion catalog.
// Items are immutable once loaded; updates go through the store and the
// catalog is rebuilt on the next load.
type Item struct {
	// ID uniquely identifies the item (normalized, stable across sessions)
	ID string `json:"id"`

	// Polarity is whether this is a "do" or a "dont"
	Polarity Polarity `json:"polarity"`

	// Text is the short action line, e.g. "Stay away"
	Text string `json:"text"`

	// Detail is an optional longer rationale (markdown)
	Detail string `json:"detail,omitempty"`

	// Tags are the situational contexts the item applies to.
	// An empty tag set means the item is universally applicable.
	Tags []string `json:"tags,omitempty"`

	// Priority orders items within a polarity; lower is shown first
	Priority int `json:"priority"`

	// Builtin marks items seeded from the default catalog
	Builtin bool `json:"builtin"`

	// CreatedAt is the Unix timestamp when the item was stored
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the item was last changed
	UpdatedAt int64 `json:"updated_at"`
}

// HasTag reports whether the item carries the given normalized tag.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Universal reports whether the item applies regardless of context.
func (i Item) Universal() bool {
	return len(i.Tags) == 0
}
