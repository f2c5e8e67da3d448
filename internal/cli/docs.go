package cli

import (
	"fmt"
	"os"
	"strings"

	"totero-cli/internal/docs"
	"totero-cli/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDocsCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show reference pages (keys, config, zotero)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, topic := range docs.Topics() {
					if _, err := fmt.Fprintln(out, topic); err != nil {
						return err
					}
				}
				return nil
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (run `totero docs` to list topics)", topic)
			}
			if raw || !isTerminal() {
				_, err := fmt.Fprint(out, body)
				return err
			}
			_, err := fmt.Fprint(out, docs.Render(body, docsWidth(), docsStyle()))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown even on a terminal")

	return cmd
}

func docsWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || w > 100 {
		return 80
	}
	return w
}

// docsStyle follows the browser's theme preference.
func docsStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(tui.EnvTheme))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
