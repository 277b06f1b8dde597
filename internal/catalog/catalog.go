package catalog

import "fmt"

// Catalog is a validated, read-only collection of suggestion items.
// It is safe for concurrent use because it is never mutated after New.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New validates items and builds a Catalog.
// Validation is fail-fast: a duplicate ID, empty ID or text, or an unknown
// polarity is a data error and the catalog must not be used.
// IDs and tags are normalized during construction.
func New(items []Item) (*Catalog, error) {
	validated := make([]Item, len(items))
	byID := make(map[string]int, len(items))

	for i, item := range items {
		item.ID = Normalize(item.ID)
		if item.ID == "" {
			return nil, fmt.Errorf("item %d: id must not be empty", i)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("duplicate item id: %s", item.ID)
		}
		if item.Text == "" {
			return nil, fmt.Errorf("item %s: text must not be empty", item.ID)
		}
		if item.Polarity != Do && item.Polarity != Dont {
			return nil, fmt.Errorf("item %s: invalid polarity %q", item.ID, item.Polarity)
		}
		item.Tags = NormalizeTags(item.Tags)

		byID[item.ID] = i
		validated[i] = item
	}

	return &Catalog{items: validated, byID: byID}, nil
}

// Items returns a copy of the catalog items in load order.
func (c *Catalog) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Get returns the item with the given ID, if present.
func (c *Catalog) Get(id string) (Item, bool) {
	idx, ok := c.byID[Normalize(id)]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
