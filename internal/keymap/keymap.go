// Package keymap resolves key symbols to browser actions.
//
// A Table is built once at startup from the built-in defaults merged with user overrides
// and is read-only afterwards.
package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

const (
	ActionMoveUp           Action = "move-up"
	ActionMoveDown         Action = "move-down"
	ActionMoveLeft         Action = "move-left"
	ActionMoveRight        Action = "move-right"
	ActionPageUp           Action = "page-up"
	ActionPageDown         Action = "page-down"
	ActionGoTop            Action = "go-top"
	ActionGoBottom         Action = "go-bottom"
	ActionOpenSortPicker   Action = "open-sort-picker"
	ActionOpenColumnPicker Action = "open-column-picker"
	ActionToggleDirection  Action = "toggle-direction"
	ActionActivate         Action = "activate"
	ActionQuit             Action = "quit"
)

// unbind is accepted in user configuration to remove a default binding.
const unbind = "none"

// Actions lists the closed action set in help order.
var Actions = []Action{
	ActionMoveUp,
	ActionMoveDown,
	ActionMoveLeft,
	ActionMoveRight,
	ActionPageUp,
	ActionPageDown,
	ActionGoTop,
	ActionGoBottom,
	ActionOpenSortPicker,
	ActionOpenColumnPicker,
	ActionToggleDirection,
	ActionActivate,
	ActionQuit,
}

var actionHelp = map[Action]string{
	ActionMoveUp:           "up",
	ActionMoveDown:         "down",
	ActionMoveLeft:         "left",
	ActionMoveRight:        "right",
	ActionPageUp:           "page up",
	ActionPageDown:         "page down",
	ActionGoTop:            "top",
	ActionGoBottom:         "bottom",
	ActionOpenSortPicker:   "sort",
	ActionOpenColumnPicker: "columns",
	ActionToggleDirection:  "reverse",
	ActionActivate:         "open",
	ActionQuit:             "quit",
}

// ParseAction maps a configured action name to an Action.
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions {
		if string(a) == name {
			return a, true
		}
	}
	return "", false
}

// Defaults returns a fresh copy of the built-in bindings.
func Defaults() map[string]Action {
	return map[string]Action{
		"up":     ActionMoveUp,
		"k":      ActionMoveUp,
		"down":   ActionMoveDown,
		"j":      ActionMoveDown,
		"left":   ActionMoveLeft,
		"h":      ActionMoveLeft,
		"right":  ActionMoveRight,
		"l":      ActionMoveRight,
		"pgup":   ActionPageUp,
		"ctrl+u": ActionPageUp,
		"pgdown": ActionPageDown,
		"ctrl+d": ActionPageDown,
		"home":   ActionGoTop,
		"g":      ActionGoTop,
		"end":    ActionGoBottom,
		"G":      ActionGoBottom,
		"s":      ActionOpenSortPicker,
		"c":      ActionOpenColumnPicker,
		"r":      ActionToggleDirection,
		"enter":  ActionActivate,
		"q":      ActionQuit,
		"ctrl+c": ActionQuit,
	}
}

// NormalizeSymbol canonicalizes a key symbol. bubbletea reports the space bar as " ";
// configuration files spell it "space".
func NormalizeSymbol(sym string) string {
	if sym == " " {
		return "space"
	}
	s := strings.TrimSpace(sym)
	// Single runes are case sensitive ("g" vs "G"); named keys are not.
	if len([]rune(s)) == 1 {
		return s
	}
	return strings.ToLower(s)
}

type Table struct {
	byKey map[string]Action
}

// New merges overrides (key symbol -> action name) over the defaults.
// An override naming an unknown action fails with *UnknownActionError.
func New(overrides map[string]string) (*Table, error) {
	byKey := Defaults()

	// Deterministic error reporting when several entries are bad.
	syms := make([]string, 0, len(overrides))
	for sym := range overrides {
		syms = append(syms, sym)
	}
	sort.Strings(syms)

	for _, raw := range syms {
		name := overrides[raw]
		sym := NormalizeSymbol(raw)
		if sym == "" {
			return nil, &UnknownActionError{Key: raw, Action: name, Err: ErrEmptyKey}
		}
		if n := strings.ToLower(strings.TrimSpace(name)); n == "" || n == unbind {
			delete(byKey, sym)
			continue
		}
		a, ok := ParseAction(name)
		if !ok {
			return nil, &UnknownActionError{Key: raw, Action: name, Err: ErrUnknownAction}
		}
		byKey[sym] = a
	}
	return &Table{byKey: byKey}, nil
}

// MustDefault returns the default table.
func MustDefault() *Table {
	t, err := New(nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the action bound to a key symbol.
func (t *Table) Resolve(sym string) (Action, bool) {
	if t == nil {
		return "", false
	}
	a, ok := t.byKey[NormalizeSymbol(sym)]
	return a, ok
}

// Keys returns the symbols bound to an action, sorted with short symbols first.
func (t *Table) Keys(a Action) []string {
	var out []string
	for sym, act := range t.byKey {
		if act == a {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Binding exposes an action as a bubbles key binding (used for help rendering).
// Actions without keys produce a disabled binding.
func (t *Table) Binding(a Action) key.Binding {
	keys := t.Keys(a)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	// bubbletea reports space as " ".
	matchKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "space" {
			k = " "
		}
		matchKeys = append(matchKeys, k)
	}
	return key.NewBinding(
		key.WithKeys(matchKeys...),
		key.WithHelp(strings.Join(keys, "/"), actionHelp[a]),
	)
}

// Overrides reports bindings that differ from the defaults (for logging).
func (t *Table) Overrides() map[string]Action {
	out := map[string]Action{}
	def := Defaults()
	for sym, a := range t.byKey {
		if def[sym] != a {
			out[sym] = a
		}
	}
	return out
}
