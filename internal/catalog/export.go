package catalog

// ExportRecord represents an item record in JSONL export format.
// It is also used for parsing export files during import.
type ExportRecord struct {
	// Header detection field - true only for header line
	TearsExport bool `json:"_tears_export,omitempty"`

	// Header fields (only present in header line)
	SchemaVersion string `json:"schema_version,omitempty"`
	ExportedAt    int64  `json:"exported_at,omitempty"`

	// Item fields
	ID        string   `json:"id"`
	Polarity  string   `json:"polarity"`
	Text      string   `json:"text"`
	Detail    string   `json:"detail,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Priority  int      `json:"priority"`
	Builtin   bool     `json:"builtin,omitempty"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// ToItem converts an ExportRecord to an Item, renormalizing derived fields.
func (r *ExportRecord) ToItem() Item {
	return Item{
		ID:        Normalize(r.ID),
		Polarity:  Polarity(Normalize(r.Polarity)),
		Text:      r.Text,
		Detail:    r.Detail,
		Tags:      NormalizeTags(r.Tags),
		Priority:  r.Priority,
		Builtin:   r.Builtin,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ItemToExportRecord converts an Item to an ExportRecord for export.
func ItemToExportRecord(i Item) *ExportRecord {
	return &ExportRecord{
		ID:        i.ID,
		Polarity:  string(i.Polarity),
		Text:      i.Text,
		Detail:    i.Detail,
		Tags:      i.Tags,
		Priority:  i.Priority,
		Builtin:   i.Builtin,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// Summary represents an item without its detail text.
// Used for browse operations (list, search) to reduce data transfer.
type Summary struct {
	// ID uniquely identifies this item
	ID string `json:"id"`

	// Polarity is "do" or "dont"
	Polarity Polarity `json:"polarity"`

	// Text is the short action line
	Text string `json:"text"`

	// Tags are the situational contexts the item applies to
	Tags []string `json:"tags,omitempty"`

	// Priority orders items within a polarity; lower first
	Priority int `json:"priority"`

	// Builtin marks seeded items
	Builtin bool `json:"builtin"`

	// DetailChars is the character count of the detail text (runes)
	DetailChars int `json:"detail_chars"`

	// UpdatedAt is the Unix timestamp when the item was last changed
	UpdatedAt int64 `json:"updated_at"`
}

// ToSummary converts an Item to a Summary by stripping the detail text.
func (i Item) ToSummary() Summary {
	return Summary{
		ID:          i.ID,
		Polarity:    i.Polarity,
		Text:        i.Text,
		Tags:        i.Tags,
		Priority:    i.Priority,
		Builtin:     i.Builtin,
		DetailChars: CountChars(i.Detail),
		UpdatedAt:   i.UpdatedAt,
	}
}
