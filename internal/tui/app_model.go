package tui

import (
	"totero-cli/internal/config"
	"totero-cli/internal/keymap"
	"totero-cli/internal/model"
	"totero-cli/internal/table"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Options are everything the browser needs; nothing is looked up globally.
type Options struct {
	DataDir string
	Records []model.Record
	Config  *config.Config
	// Columns defaults to table.DefaultRegistry().
	Columns *table.Registry
	// Sort is the initial sort; nil keeps load order.
	Sort     table.Spec
	Launcher Launcher
	Logger   zerolog.Logger
}

// title, header, divider and footer lines.
const chromeLines = 4

// Fallback screen size until the first tea.WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

type appModel struct {
	dataDir  string
	cfg      *config.Config
	keys     *keymap.Table
	theme    theme
	reg      *table.Registry
	launcher Launcher
	log      zerolog.Logger

	// records is load order; rows is records under spec.
	records []model.Record
	rows    []model.Record
	spec    table.Spec

	width  int
	height int

	row    int
	col    int
	offset int

	// modal is nil in the normal state; every key goes to it while set.
	modal *picker

	minibufferText string
	minibufferWarn bool

	help help.Model
}

// New builds the browser model.
func New(opts Options) tea.Model {
	return newAppModel(opts)
}

func newAppModel(opts Options) appModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	keys := cfg.Bindings
	if keys == nil {
		keys = keymap.MustDefault()
	}
	reg := opts.Columns
	if reg == nil {
		reg = table.DefaultRegistry()
	}
	var launcher Launcher = SystemLauncher{}
	if opts.Launcher != nil {
		launcher = opts.Launcher
	}

	records := make([]model.Record, len(opts.Records))
	copy(records, opts.Records)

	m := appModel{
		dataDir:  opts.DataDir,
		cfg:      cfg,
		keys:     keys,
		theme:    newTheme(cfg.Theme),
		reg:      reg,
		launcher: launcher,
		log:      opts.Logger,
		records:  records,
		spec:     opts.Sort,
		rows:     table.Sort(records, opts.Sort, reg),
		help:     help.New(),
	}
	m.log.Info().
		Int("records", len(records)).
		Strs("columns", reg.VisibleNames()).
		Str("sort", opts.Sort.String()).
		Msg("browser started")
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) modalKind() modalKind {
	if m.modal == nil {
		return modalNone
	}
	return m.modal.kind
}

func (m appModel) screenSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// bodyHeight is the number of table rows that fit on screen (at least 1).
func (m appModel) bodyHeight() int {
	_, h := m.screenSize()
	if h -= chromeLines; h < 1 {
		return 1
	}
	return h
}

func (m appModel) cursorRecord() (model.Record, bool) {
	if m.row < 0 || m.row >= len(m.rows) {
		return model.Record{}, false
	}
	return m.rows[m.row], true
}

func (m appModel) cursorColumn() (table.Column, bool) {
	cols := m.reg.Visible()
	if m.col < 0 || m.col >= len(cols) {
		return table.Column{}, false
	}
	return cols[m.col], true
}

// clampCursor restores 0 <= row < len(rows) and 0 <= col < visible columns, then
// scrolls the cursor row into view. With no rows the cursor rests at 0.
func (m *appModel) clampCursor() {
	if m.row >= len(m.rows) {
		m.row = len(m.rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if n := len(m.reg.VisibleNames()); m.col >= n {
		m.col = n - 1
	}
	if m.col < 0 {
		m.col = 0
	}

	bodyH := m.bodyHeight()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+bodyH {
		m.offset = m.row - bodyH + 1
	}
	if maxOff := len(m.rows) - bodyH; m.offset > maxOff {
		m.offset = maxOff
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferWarn = false
}

func (m *appModel) showWarning(text string) {
	m.minibufferText = text
	m.minibufferWarn = true
}

func (m *appModel) clearMinibuffer() {
	m.minibufferText = ""
	m.minibufferWarn = false
}

// footerKeys is the short help shown when the minibuffer is empty.
type footerKeys struct {
	keys *keymap.Table
}

func (f footerKeys) ShortHelp() []key.Binding {
	out := []key.Binding{}
	for _, a := range []keymap.Action{
		keymap.ActionMoveDown,
		keymap.ActionMoveUp,
		keymap.ActionOpenSortPicker,
		keymap.ActionToggleDirection,
		keymap.ActionOpenColumnPicker,
		keymap.ActionActivate,
		keymap.ActionQuit,
	} {
		if b := f.keys.Binding(a); b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

func (f footerKeys) FullHelp() [][]key.Binding {
	var all []key.Binding
	for _, a := range keymap.Actions {
		if b := f.keys.Binding(a); b.Enabled() {
			all = append(all, b)
		}
	}
	return [][]key.Binding{all}
}
