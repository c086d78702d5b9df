package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It falls back to the raw markdown when the renderer cannot be built.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// CatalogMarkdown lists the catalog as a markdown table.
func CatalogMarkdown(c *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString("# Pages\n\n")
	sb.WriteString("| Key | ID | Title | Description |\n")
	sb.WriteString("|-----|----|-------|-------------|\n")
	for _, e := range c.Entries() {
		def := ""
		if e.Key == catalog.DefaultKey {
			def = " *(default)*"
		}
		sb.WriteString(fmt.Sprintf("| `%s`%s | %d | %s | %s |\n", e.Key, def, e.Page.ID, e.Page.Title, e.Page.Description))
	}
	return sb.String()
}

// StepsMarkdown lists the steps of a request in submission order.
func StepsMarkdown(req domain.ExecutionRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", req.NameFlow))
	if len(req.Steps) == 0 {
		sb.WriteString("_No steps._\n")
		return sb.String()
	}
	for i, s := range req.Steps {
		sb.WriteString(fmt.Sprintf("%d. **%s** (page %d)\n", i+1, s.Accion, s.ID))
	}
	return sb.String()
}
