// Package catalog holds the fixed set of pages a flow can navigate to.
package catalog

import (
	"fmt"

	"github.com/aretw0/stepflow/pkg/domain"
)

// DefaultKey is used when no page has been selected.
const DefaultKey = "home"

// Entry pairs a catalog key with its page.
type Entry struct {
	Key  string
	Page domain.Page
}

// Catalog is an immutable, ordered lookup of pages by key.
type Catalog struct {
	keys  []string
	pages map[string]domain.Page
}

// New builds a catalog from entries, keeping their order.
// Empty keys, empty titles and duplicate keys are rejected.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		keys:  make([]string, 0, len(entries)),
		pages: make(map[string]domain.Page, len(entries)),
	}
	for i, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("entry %d: empty key", i)
		}
		if e.Page.Title == "" {
			return nil, fmt.Errorf("entry %q: empty title", e.Key)
		}
		if _, dup := c.pages[e.Key]; dup {
			return nil, fmt.Errorf("entry %q: duplicate key", e.Key)
		}
		c.keys = append(c.keys, e.Key)
		c.pages[e.Key] = e.Page
	}
	return c, nil
}

// Default returns the built-in catalog of six pages.
func Default() *Catalog {
	c, err := New(
		Entry{Key: "home", Page: domain.Page{ID: 1, Title: "Home", Description: "Home Page"}},
		Entry{Key: "flights", Page: domain.Page{ID: 2, Title: "Flights", Description: "Flights Page"}},
		Entry{Key: "passengers", Page: domain.Page{ID: 3, Title: "Passengers", Description: "Passengers Page"}},
		Entry{Key: "services", Page: domain.Page{ID: 4, Title: "Services", Description: "Services Page"}},
		Entry{Key: "seats", Page: domain.Page{ID: 5, Title: "Seats", Description: "Seats Page"}},
		Entry{Key: "payment", Page: domain.Page{ID: 6, Title: "Payment", Description: "Payment Page"}},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the page for key.
func (c *Catalog) Lookup(key string) (domain.Page, bool) {
	p, ok := c.pages[key]
	return p, ok
}

// Keys returns the catalog keys in declaration order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Entries returns every entry in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Entry{Key: k, Page: c.pages[k]})
	}
	return out
}

// Len returns the number of pages.
func (c *Catalog) Len() int { return len(c.keys) }
