// Package catalog holds the service offering shown by /services.
package catalog

// Entry describes a single offered service.
type Entry struct {
	Key         string
	Name        string
	Description string
	StartsFrom  string
}

var defaultEntries = []Entry{
	{
		Key:         "web",
		Name:        "Web development",
		Description: "Websites, web apps, landing pages and admin panels.",
		StartsFrom:  "$500",
	},
	{
		Key:         "mobile",
		Name:        "Mobile apps",
		Description: "iOS and Android apps, from MVP to store release.",
		StartsFrom:  "$1500",
	},
	{
		Key:         "ai",
		Name:        "AI integrations",
		Description: "Chatbots, assistants and automation on top of LLM APIs.",
		StartsFrom:  "$700",
	},
	{
		Key:         "uiux",
		Name:        "UI/UX design",
		Description: "Interfaces, prototypes and design systems.",
		StartsFrom:  "$300",
	},
	{
		Key:         "maintenance",
		Name:        "Support & maintenance",
		Description: "Monitoring, fixes and improvements for existing products.",
		StartsFrom:  "$200/mo",
	},
}

// Catalog is an ordered, immutable set of service entries.
type Catalog struct {
	entries []Entry
	byKey   map[string]Entry
}

// Default returns the built-in service catalog.
func Default() *Catalog {
	return New(defaultEntries)
}

// New builds a catalog from the given entries, preserving order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byKey:   make(map[string]Entry, len(entries)),
	}
	copy(c.entries, entries)
	for _, e := range entries {
		c.byKey[e.Key] = e
	}
	return c
}

// Entries returns entries in presentation order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds an entry by key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// Len reports how many services the catalog holds.
func (c *Catalog) Len() int {
	return len(c.entries)
}
