package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCatalogMarkdown(t *testing.T) {
	md := CatalogMarkdown(catalog.Default())

	assert.Contains(t, md, "| `home` *(default)* | 1 | Home | Home Page |")
	assert.Contains(t, md, "| `payment` | 6 | Payment | Payment Page |")
	assert.Equal(t, 2+6, strings.Count(md, "|\n"), "header, separator and six rows")
}

func TestStepsMarkdown(t *testing.T) {
	md := StepsMarkdown(domain.ExecutionRequest{
		NameFlow: "Playwright Flow",
		Steps:    []domain.ExecutionStep{{ID: 2, Accion: "Flights"}, {ID: 5, Accion: "Seats"}},
	})
	assert.Contains(t, md, "## Playwright Flow")
	assert.Contains(t, md, "1. **Flights** (page 2)")
	assert.Contains(t, md, "2. **Seats** (page 5)")

	assert.Contains(t, StepsMarkdown(domain.ExecutionRequest{NameFlow: "x"}), "_No steps._")
}

func TestFormatNotification_Plain(t *testing.T) {
	got := FormatNotification(domain.Notification{
		Title:       "API status",
		Description: "you can continue with the flow.",
		Severity:    domain.SeveritySuccess,
	}, false)
	assert.Equal(t, "✔ API status\n  you can continue with the flow.", got)

	got = FormatNotification(domain.Notification{Title: "boom", Severity: domain.SeverityError}, false)
	assert.Equal(t, "✖ boom", got)
}

func TestPrintNotification_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintNotification(&buf, domain.Notification{Title: "queued", Severity: domain.SeverityInfo})
	assert.Equal(t, "i queued\n", buf.String())
}

func TestRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title\n\nbody")
	assert.NoError(t, err)
	assert.Contains(t, out, "body")
}
