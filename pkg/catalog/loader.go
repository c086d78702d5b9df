package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stepflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

// fileEntry is the on-disk shape of a catalog entry.
type fileEntry struct {
	Key         string `yaml:"key"`
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type fileCatalog struct {
	Pages []fileEntry `yaml:"pages"`
}

// Parse reads a YAML catalog of the form:
//
//	pages:
//	  - key: home
//	    id: 1
//	    title: Home
//	    description: Home Page
func Parse(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(fc.Pages) == 0 {
		return nil, fmt.Errorf("catalog has no pages")
	}

	entries := make([]Entry, 0, len(fc.Pages))
	for _, p := range fc.Pages {
		entries = append(entries, Entry{
			Key:  p.Key,
			Page: domain.Page{ID: p.ID, Title: p.Title, Description: p.Description},
		})
	}
	return New(entries...)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
