package tui

import (
	"path/filepath"
	"strconv"

	"totero-cli/internal/keymap"
	"totero-cli/internal/store"
	"totero-cli/internal/table"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case attachmentOpenDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("path", msg.path).Msg("open attachment failed")
			m.showWarning(msg.err.Error())
			return m, nil
		}
		m.showMinibuffer("Opened " + filepath.Base(msg.path))
		return m, nil

	case tea.KeyMsg:
		// Notices last until the next key.
		m.clearMinibuffer()
		sym := keySymbol(msg)
		if m.modal != nil {
			return m.updatePicker(sym)
		}
		a, ok := m.keys.Resolve(sym)
		if !ok {
			return m, nil
		}
		return m.handleAction(a)
	}
	return m, nil
}

func keySymbol(msg tea.KeyMsg) string {
	return keymap.NormalizeSymbol(msg.String())
}

func (m appModel) updatePicker(sym string) (tea.Model, tea.Cmd) {
	p, outcome := m.modal.handleKey(sym)
	switch outcome {
	case pickerCancelled:
		m.modal = nil
		return m, nil
	case pickerConfirmed:
		m.modal = nil
		if p.onCommit == nil {
			return m, nil
		}
		next, cmd := p.onCommit(m, p.selection())
		next.clampCursor()
		return next, cmd
	}
	m.modal = &p
	return m, nil
}

func (m appModel) handleAction(a keymap.Action) (tea.Model, tea.Cmd) {
	switch a {
	case keymap.ActionQuit:
		m.log.Info().Msg("quit")
		return m, tea.Quit
	case keymap.ActionMoveUp:
		m.row--
	case keymap.ActionMoveDown:
		m.row++
	case keymap.ActionPageUp:
		m.row -= m.bodyHeight()
	case keymap.ActionPageDown:
		m.row += m.bodyHeight()
	case keymap.ActionGoTop:
		m.row = 0
	case keymap.ActionGoBottom:
		m.row = len(m.rows) - 1
	case keymap.ActionMoveLeft:
		m.col--
	case keymap.ActionMoveRight:
		m.col++
	case keymap.ActionOpenSortPicker:
		m.openSortPicker()
	case keymap.ActionOpenColumnPicker:
		m.openColumnPicker()
	case keymap.ActionToggleDirection:
		if c, ok := m.cursorColumn(); ok {
			m.applySort(m.spec.Toggle(c.Name))
		}
	case keymap.ActionActivate:
		return m.activate()
	}
	m.clampCursor()
	return m, nil
}

func (m appModel) columnItems() []pickerItem {
	cols := m.reg.All()
	items := make([]pickerItem, 0, len(cols))
	for _, c := range cols {
		items = append(items, pickerItem{Key: c.Name, Label: c.Header})
	}
	return items
}

func (m *appModel) openSortPicker() {
	p := newPicker(modalSortPicker, "Sort by", m.columnItems(), m.spec.Columns(), false, func(m appModel, keys []string) (appModel, tea.Cmd) {
		next := m.spec.Reorder(keys)
		if err := next.Validate(m.reg); err != nil {
			// The picker only offers registered columns.
			panic(err)
		}
		m.applySort(next)
		return m, nil
	})
	m.modal = &p
}

// applySort re-sorts from load order and keeps the cursor on the same record.
func (m *appModel) applySort(spec table.Spec) {
	cur, hadCursor := m.cursorRecord()
	m.spec = spec
	m.rows = table.Sort(m.records, spec, m.reg)
	if hadCursor {
		for i, r := range m.rows {
			if r.ID == cur.ID {
				m.row = i
				break
			}
		}
	}
	m.clampCursor()
	m.log.Info().Str("sort", spec.String()).Msg("sort changed")
	m.showMinibuffer("Sort: " + spec.String())
}

func (m *appModel) openColumnPicker() {
	p := newPicker(modalColumnPicker, "Visible columns", m.columnItems(), m.reg.VisibleNames(), false, func(m appModel, keys []string) (appModel, tea.Cmd) {
		if len(keys) == 0 {
			m.showWarning("At least one column must stay visible")
			return m, nil
		}
		cur, hadCol := m.cursorColumn()
		if err := m.reg.SetVisible(keys); err != nil {
			panic(err)
		}
		if hadCol {
			for i, name := range keys {
				if name == cur.Name {
					m.col = i
					break
				}
			}
		}
		m.clampCursor()
		m.log.Info().Strs("columns", keys).Msg("visible columns changed")
		return m, nil
	})
	m.modal = &p
}

func (m appModel) activate() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRecord()
	if !ok {
		m.showMinibuffer("Nothing to open")
		return m, nil
	}
	atts := store.AttachmentsOf(r)
	switch len(atts) {
	case 0:
		m.showMinibuffer("Nothing to open")
		return m, nil
	case 1:
		return m, m.openAttachment(atts[0])
	}

	items := make([]pickerItem, 0, len(atts))
	for i, a := range atts {
		label := a.Label
		if label == "" {
			label = filepath.Base(a.Path)
		}
		items = append(items, pickerItem{Key: strconv.Itoa(i), Label: label})
	}
	p := newPicker(modalAttachmentPicker, "Open attachment", items, nil, true, func(m appModel, keys []string) (appModel, tea.Cmd) {
		if len(keys) == 0 {
			return m, nil
		}
		i, err := strconv.Atoi(keys[0])
		if err != nil || i < 0 || i >= len(atts) {
			return m, nil
		}
		return m, m.openAttachment(atts[i])
	})
	m.modal = &p
	return m, nil
}
