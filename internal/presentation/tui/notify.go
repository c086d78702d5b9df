package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var severityColors = map[domain.Severity]string{
	domain.SeveritySuccess: "#22c55e",
	domain.SeverityError:   "#ef4444",
	domain.SeverityWarning: "#f59e0b",
	domain.SeverityInfo:    "#38bdf8",
}

var severityIcons = map[domain.Severity]string{
	domain.SeveritySuccess: "✔",
	domain.SeverityError:   "✖",
	domain.SeverityWarning: "!",
	domain.SeverityInfo:    "i",
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FormatNotification renders a notification as one or two lines.
// Colors are only applied when color is true.
func FormatNotification(n domain.Notification, color bool) string {
	icon := severityIcons[n.Severity]
	if icon == "" {
		icon = "-"
	}
	head := fmt.Sprintf("%s %s", icon, n.Title)
	if color {
		p := termenv.ColorProfile()
		head = termenv.String(head).Foreground(p.Color(severityColors[n.Severity])).Bold().String()
	}
	if n.Description == "" {
		return head
	}
	return head + "\n  " + n.Description
}

// PrintNotification writes n to w, colored when w is a terminal.
func PrintNotification(w io.Writer, n domain.Notification) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = IsTerminal(f)
	}
	fmt.Fprintln(w, FormatNotification(n, color))
}
