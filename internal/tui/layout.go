package tui

import (
	"strings"

	"totero-cli/internal/table"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		// Bound the width computation on huge lines.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Cut(ln, 0, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			ln = xansi.Truncate(ln, width, "…")
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// fitCell flattens s to one line and truncates or pads it to exactly width columns.
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if xansi.StringWidth(s) > width {
		s = xansi.Truncate(s, width, "…")
	}
	if w := xansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// columnWidths splits total among cols by weight, leaving one column between cells.
// Every column gets at least 1.
func columnWidths(cols []table.Column, total int) []int {
	n := len(cols)
	if n == 0 {
		return nil
	}
	avail := total - (n - 1)
	out := make([]int, n)
	sum := 0
	for _, c := range cols {
		sum += c.EffectiveWeight()
	}
	used := 0
	for i, c := range cols {
		w := 0
		if avail > 0 {
			w = avail * c.EffectiveWeight() / sum
		}
		if w < 1 {
			w = 1
		}
		out[i] = w
		used += w
	}
	// Hand out rounding leftovers from the left.
	for i := 0; used < avail; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func modalBodyWidth(width int) int {
	w := width * 2 / 3
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	if w > width-4 {
		w = width - 4
	}
	if w < 1 {
		w = 1
	}
	return w
}

func renderModalBox(width int, th theme, title, content string) string {
	bodyW := modalBodyWidth(width)
	head := th.modalTitle.Render(fitCell(title, bodyW))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.modalBorder.GetForeground()).
		Padding(0, 1)
	return box.Render(head + "\n\n" + normalizePane(content, bodyW, 0))
}

// overlayCenter draws box over the middle of base. base must already be width x height.
func overlayCenter(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, ln := range boxLines {
		if w := xansi.StringWidth(ln); w > boxW {
			boxW = w
		}
	}
	top := (height - len(boxLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - boxW) / 2
	if left < 0 {
		left = 0
	}
	for i, ln := range boxLines {
		y := top + i
		if y >= len(baseLines) {
			break
		}
		under := baseLines[y]
		ln = normalizePane(ln, boxW, 1)
		baseLines[y] = xansi.Cut(under, 0, left) + ln + xansi.Cut(under, left+boxW, width)
	}
	return normalizePane(strings.Join(baseLines, "\n"), width, height)
}
