// ABOUTME: Intent tags and catalog entries loaded from intents.json / intents.yaml
// ABOUTME: The catalog is read-only to the core and indexed by tag
package models

// Tag is an intent identifier from the catalog's closed vocabulary
type Tag string

// Well-known tags the dispatcher acts on. Everything else is conversational.
const (
	TagOpenApp  Tag = "открыть_приложение"
	TagSearch   Tag = "поиск_в_интернете"
	TagTime     Tag = "текущее_время"
	TagDate     Tag = "текущая_дата"
	TagFarewell Tag = "прощание"
)

// Template placeholders
const (
	PlaceholderApp   = "%app%"
	PlaceholderQuery = "%query%"
	PlaceholderTime  = "%time%"
	PlaceholderDate  = "%date%"
)

// Intent is one catalog entry
type Intent struct {
	Tag       Tag      `json:"tag" yaml:"tag"`
	Patterns  []string `json:"patterns" yaml:"patterns"`
	Responses []string `json:"responses" yaml:"responses"`
}

// Catalog is the full intent document
type Catalog struct {
	Intents []Intent `json:"intents" yaml:"intents"`

	index map[Tag]int
}

// Lookup returns the entry for tag. The first entry wins on duplicate tags.
func (c *Catalog) Lookup(tag Tag) (*Intent, bool) {
	if c == nil {
		return nil, false
	}
	if c.index == nil {
		for i := range c.Intents {
			if c.Intents[i].Tag == tag {
				return &c.Intents[i], true
			}
		}
		return nil, false
	}
	i, ok := c.index[tag]
	if !ok {
		return nil, false
	}
	return &c.Intents[i], true
}

// Tags returns every tag in document order
func (c *Catalog) Tags() []Tag {
	if c == nil {
		return nil
	}
	tags := make([]Tag, 0, len(c.Intents))
	for _, in := range c.Intents {
		tags = append(tags, in.Tag)
	}
	return tags
}

// Has reports whether tag exists in the catalog
func (c *Catalog) Has(tag Tag) bool {
	_, ok := c.Lookup(tag)
	return ok
}

// Index builds the tag lookup table. Call once after loading and before sharing the catalog.
func (c *Catalog) Index() {
	c.index = make(map[Tag]int, len(c.Intents))
	for i, in := range c.Intents {
		if _, dup := c.index[in.Tag]; !dup {
			c.index[in.Tag] = i
		}
	}
}
