package tui

import (
	"fmt"
	"testing"

	"totero-cli/internal/config"
	"totero-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type fakeLauncher struct {
	opened []string
	err    error
}

func (f *fakeLauncher) Open(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func rec(id int64, fields map[string]string, atts ...model.Attachment) model.Record {
	if fields == nil {
		fields = map[string]string{}
	}
	return model.Record{ID: id, Key: fmt.Sprintf("K%d", id), Fields: fields, Attachments: atts}
}

func yearRecords(years ...string) []model.Record {
	out := make([]model.Record, 0, len(years))
	for i, y := range years {
		out = append(out, rec(int64(i+1), map[string]string{
			model.FieldTitle: fmt.Sprintf("Paper %d", i+1),
			model.FieldYear:  y,
		}))
	}
	return out
}

func newTestModel(t *testing.T, records []model.Record, l Launcher) appModel {
	t.Helper()
	return newTestModelWithConfig(t, records, l, nil)
}

func newTestModelWithConfig(t *testing.T, records []model.Record, l Launcher, cfg *config.Config) appModel {
	t.Helper()
	if l == nil {
		l = &fakeLauncher{}
	}
	m := newAppModel(Options{
		DataDir:  t.TempDir(),
		Records:  records,
		Config:   cfg,
		Launcher: l,
		Logger:   zerolog.Nop(),
	})
	// 14 lines leaves a 10-row table body.
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 14})
	return mm.(appModel)
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"ctrl+c": tea.KeyCtrlC,
	"ctrl+d": tea.KeyCtrlD,
	"ctrl+u": tea.KeyCtrlU,
	"ctrl+g": tea.KeyCtrlG,
}

func keyMsg(sym string) tea.KeyMsg {
	if sym == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if kt, ok := namedKeys[sym]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(sym)}
}

// press feeds keys one at a time and returns the model plus the last command.
func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var mm tea.Model
		mm, cmd = m.Update(keyMsg(k))
		m = mm.(appModel)
	}
	return m, cmd
}

func rowIDs(m appModel) []int64 {
	out := make([]int64, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.ID)
	}
	return out
}

func assertCursorInBounds(t *testing.T, m appModel) {
	t.Helper()
	if len(m.rows) > 0 && (m.row < 0 || m.row >= len(m.rows)) {
		t.Fatalf("row %d out of [0,%d)", m.row, len(m.rows))
	}
	if n := len(m.reg.Visible()); m.col < 0 || m.col >= n {
		t.Fatalf("col %d out of [0,%d)", m.col, n)
	}
	if m.offset < 0 || (len(m.rows) > 0 && m.offset > m.row) {
		t.Fatalf("offset %d does not show row %d", m.offset, m.row)
	}
}
