// Package format renders record listings for the non-interactive list command.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table is a listing: column names plus one string cell per column and row.
// A missing value is "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// Formats lists the names accepted by Write.
var Formats = []string{"text", "tsv", "json"}

// Write writes t in the requested format.
//
// Supported formats:
// - text (default): aligned columns
// - tsv: tab separated, header first
// - json: array of objects keyed by column name
func Write(w io.Writer, t Table, format string, pretty bool) error {
	switch format {
	case "", "text":
		return WriteText(w, t)
	case "tsv":
		return WriteTSV(w, t)
	case "json":
		return WriteJSON(w, t, pretty)
	default:
		return fmt.Errorf("unknown format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON writes strict JSON. Absent cells are omitted from their object.
func WriteJSON(w io.Writer, t Table, pretty bool) error {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) && row[i] != "" {
				obj[col] = row[i]
			}
		}
		out = append(out, obj)
	}

	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(out, "", "  ")
	} else {
		b, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTSV writes a header line and one line per row. Tabs and newlines inside
// cells become spaces.
func WriteTSV(w io.Writer, t Table) error {
	if _, err := fmt.Fprintln(w, joinCells(t.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, joinCells(pad(row, len(t.Columns)), "\t")); err != nil {
			return err
		}
	}
	return nil
}

func WriteText(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, joinCells(header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, joinCells(pad(row, len(t.Columns)), "\t"))
	}
	return tw.Flush()
}

var cellReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func joinCells(cells []string, sep string) string {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = cellReplacer.Replace(c)
	}
	return strings.Join(clean, sep)
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
