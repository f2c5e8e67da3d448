package cli

import (
	"fmt"
	"strings"

	"totero-cli/internal/format"
	"totero-cli/internal/table"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		sortKeys []string
		columns  []string
		outFmt   string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "list PATH",
		Short: "Print records without starting the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			defer s.close()

			if len(columns) > 0 {
				if err := s.reg.SetVisible(trimAll(columns)); err != nil {
					return fmt.Errorf("--columns: %w", err)
				}
			}
			spec := s.sort
			if cmd.Flags().Changed("sort") {
				spec, err = table.ParseSpec(sortKeys)
				if err == nil {
					err = spec.Validate(s.reg)
				}
				if err != nil {
					return fmt.Errorf("--sort: %w", err)
				}
			}

			rows := table.Sort(s.records, spec, s.reg)
			cols := s.reg.Visible()
			out := format.Table{Columns: s.reg.VisibleNames()}
			for _, r := range rows {
				cells := make([]string, len(cols))
				for i, c := range cols {
					cells[i], _ = c.Kind.Extract(r)
				}
				out.Rows = append(out.Rows, cells)
			}
			s.log.Logger.Info().Str("sort", spec.String()).Int("rows", len(rows)).Str("format", outFmt).Msg("list")
			return format.Write(cmd.OutOrStdout(), out, outFmt, pretty)
		},
	}

	cmd.Flags().StringSliceVar(&sortKeys, "sort", nil, `Sort keys as column[:asc|desc], e.g. "year:desc,author" (default: config)`)
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to print, in order (default: visible columns from config)")
	cmd.Flags().StringVar(&outFmt, "format", "text", "Output format ("+strings.Join(format.Formats, "|")+")")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
