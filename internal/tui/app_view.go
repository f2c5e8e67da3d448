package tui

import (
	"fmt"
	"strings"

	"totero-cli/internal/table"
)

func (m appModel) View() string {
	w, h := m.screenSize()
	cols := m.reg.Visible()
	widths := columnWidths(cols, w)

	lines := make([]string, 0, h)
	lines = append(lines, m.theme.title.Render(fitCell(m.titleLine(), w)))
	lines = append(lines, m.theme.header.Render(fitCell(m.headerLine(cols, widths), w)))
	lines = append(lines, m.theme.divider.Render(strings.Repeat("═", w)))

	bodyH := m.bodyHeight()
	if len(m.rows) == 0 {
		lines = append(lines, m.theme.status.Render(fitCell("No records.", w)))
		for i := 1; i < bodyH; i++ {
			lines = append(lines, "")
		}
	} else {
		for i := m.offset; i < m.offset+bodyH; i++ {
			if i >= len(m.rows) {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, m.renderRow(i, cols, widths))
		}
	}

	lines = append(lines, m.footerLine(w))
	out := normalizePane(strings.Join(lines, "\n"), w, h)
	if m.modal != nil {
		out = overlayCenter(out, m.modal.view(w, h, m.theme), w, h)
	}
	return out
}

func (m appModel) titleLine() string {
	return fmt.Sprintf("totero  %s  %d records  sort: %s", m.dataDir, len(m.rows), m.spec.String())
}

// headerLine marks sort keys with their direction and, for multi-key sorts, precedence.
func (m appModel) headerLine(cols []table.Column, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		label := c.Header
		if idx := m.spec.Index(c.Name); idx >= 0 {
			arrow := "▲"
			if m.spec[idx].Desc {
				arrow = "▼"
			}
			if len(m.spec) > 1 {
				arrow += fmt.Sprint(idx + 1)
			}
			label += " " + arrow
		}
		cells[i] = fitCell(label, widths[i])
	}
	return strings.Join(cells, " ")
}

func (m appModel) renderRow(i int, cols []table.Column, widths []int) string {
	r := m.rows[i]
	selected := i == m.row
	rowStyle := m.theme.row
	if selected {
		rowStyle = m.theme.rowSelected
	}

	var b strings.Builder
	for j, c := range cols {
		if j > 0 {
			b.WriteString(rowStyle.Render(" "))
		}
		v, _ := c.Kind.Extract(r)
		cell := fitCell(v, widths[j])
		if selected && j == m.col {
			b.WriteString(m.theme.cellSelected.Render(cell))
		} else {
			b.WriteString(rowStyle.Render(cell))
		}
	}
	return b.String()
}

func (m appModel) footerLine(w int) string {
	if m.minibufferText != "" {
		if m.minibufferWarn {
			return m.theme.warning.Render(fitCell(m.minibufferText, w))
		}
		return m.theme.status.Render(fitCell(m.minibufferText, w))
	}
	return m.help.View(footerKeys{keys: m.keys})
}
