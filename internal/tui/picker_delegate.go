package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerListItem is one picker option with its check marker already worked out.
type pickerListItem struct {
	item pickerItem
	mark string
}

func (i pickerListItem) FilterValue() string { return i.item.Label }

// pickerDelegate draws one option per line: marker, label, full-width highlight.
type pickerDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newPickerDelegate(th theme) pickerDelegate {
	return pickerDelegate{normal: th.option, selected: th.optionSelected}
}

func (d pickerDelegate) Height() int                             { return 1 }
func (d pickerDelegate) Spacing() int                            { return 0 }
func (d pickerDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(pickerListItem)
	if !ok || m.Width() < 1 {
		return
	}
	line := fitCell(it.mark+" "+it.item.Label, m.Width())
	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	fmt.Fprint(w, style.Render(line))
}

// newPickerList builds a list with no chrome of its own; the modal box draws the
// title and key help.
func newPickerList(items []list.Item, th theme, width, height int) list.Model {
	l := list.New(items, newPickerDelegate(th), width, height)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	return l
}
