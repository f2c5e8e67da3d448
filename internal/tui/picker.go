package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalSortPicker
	modalColumnPicker
	modalAttachmentPicker
)

type pickerItem struct {
	Key   string
	Label string
}

type pickerOutcome int

const (
	pickerOpen pickerOutcome = iota
	pickerConfirmed
	pickerCancelled
)

// picker is the one pop-up list used for sort keys, visible columns and attachments.
// Its methods return updated copies; checked is never shared between copies.
type picker struct {
	kind  modalKind
	title string
	items []pickerItem
	// checked holds item keys in the order they were checked.
	checked []string
	cursor  int
	single  bool

	onCommit func(m appModel, keys []string) (appModel, tea.Cmd)
}

func newPicker(kind modalKind, title string, items []pickerItem, prechecked []string, single bool, onCommit func(appModel, []string) (appModel, tea.Cmd)) picker {
	p := picker{
		kind:     kind,
		title:    title,
		items:    items,
		single:   single,
		onCommit: onCommit,
	}
	for _, k := range prechecked {
		if p.indexOf(k) >= 0 && p.position(k) < 0 {
			p.checked = append(p.checked, k)
		}
	}
	return p
}

func (p picker) indexOf(key string) int {
	for i, it := range p.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// position is the 0-based check order of key, or -1.
func (p picker) position(key string) int {
	for i, k := range p.checked {
		if k == key {
			return i
		}
	}
	return -1
}

func (p picker) selection() []string {
	out := make([]string, len(p.checked))
	copy(out, p.checked)
	return out
}

// toggle removes a checked key (closing the gap in the order) or appends an unchecked one.
func (p picker) toggle(key string) picker {
	if p.indexOf(key) < 0 {
		return p
	}
	next := make([]string, 0, len(p.checked)+1)
	found := false
	for _, k := range p.checked {
		if k == key {
			found = true
			continue
		}
		next = append(next, k)
	}
	if !found {
		next = append(next, key)
	}
	p.checked = next
	return p
}

func (p picker) move(delta int) picker {
	p.cursor += delta
	if p.cursor >= len(p.items) {
		p.cursor = len(p.items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	return p
}

func (p picker) current() (pickerItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return pickerItem{}, false
	}
	return p.items[p.cursor], true
}

// handleKey applies one key. Modal keys are fixed; the binding table is not consulted.
func (p picker) handleKey(sym string) (picker, pickerOutcome) {
	switch sym {
	case "up", "k":
		return p.move(-1), pickerOpen
	case "down", "j":
		return p.move(1), pickerOpen
	case "home", "g":
		return p.move(-len(p.items)), pickerOpen
	case "end", "G":
		return p.move(len(p.items)), pickerOpen
	case "space", "x":
		it, ok := p.current()
		if !ok {
			return p, pickerOpen
		}
		p = p.toggle(it.Key)
		if p.single && p.position(it.Key) >= 0 {
			return p, pickerConfirmed
		}
		return p, pickerOpen
	case "enter":
		if !p.single {
			return p, pickerConfirmed
		}
		it, ok := p.current()
		if !ok {
			return p, pickerCancelled
		}
		p.checked = []string{it.Key}
		return p, pickerConfirmed
	case "esc", "ctrl+g", "q", "ctrl+c":
		return p, pickerCancelled
	}
	return p, pickerOpen
}

// Longest option list shown at once; longer lists page with the cursor.
const maxPickerRows = 18

// modalChrome is the box border, title, and help lines around the options.
const modalChrome = 6

// pickerRows is how many options fit on a screen of the given height.
func pickerRows(n, height int) int {
	rows := n
	if rows > maxPickerRows {
		rows = maxPickerRows
	}
	if avail := height - modalChrome; rows > avail {
		rows = avail
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p picker) mark(key string) string {
	if p.single {
		return "   "
	}
	pos := p.position(key)
	switch {
	case pos < 0:
		return "[ ]"
	case pos >= 9:
		return "[*]"
	}
	return fmt.Sprintf("[%d]", pos+1)
}

func (p picker) view(width, height int, th theme) string {
	bodyW := modalBodyWidth(width)
	var lines []string
	if len(p.items) == 0 {
		lines = append(lines, th.status.Render("(nothing to choose)"))
	} else {
		items := make([]list.Item, 0, len(p.items))
		for _, it := range p.items {
			items = append(items, pickerListItem{item: it, mark: p.mark(it.Key)})
		}
		rows := pickerRows(len(items), height)
		l := newPickerList(items, th, bodyW, rows)
		l.Select(p.cursor)
		lines = append(lines, l.View())
	}

	help := "space: toggle  enter: confirm  esc: cancel"
	if p.single {
		help = "enter: open  esc: cancel"
	}
	if rows := pickerRows(len(p.items), height); len(p.items) > rows {
		help = fmt.Sprintf("%d/%d  %s", p.cursor+1, len(p.items), help)
	}
	lines = append(lines, "", th.status.Render(fitCell(help, bodyW)))
	return renderModalBox(width, th, p.title, strings.Join(lines, "\n"))
}
