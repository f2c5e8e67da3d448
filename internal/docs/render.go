package docs

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render formats md for a terminal of the given width. style is "light" or "dark";
// anything else falls back to "dark". On renderer failure md is returned as is.
func Render(md string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "light":
		style = "light"
	default:
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle queries the terminal and can block; the caller decides.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
