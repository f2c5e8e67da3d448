package keymap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultsResolve(t *testing.T) {
	t.Parallel()

	tbl := MustDefault()
	tests := []struct {
		sym  string
		want Action
	}{
		{"j", ActionMoveDown},
		{"down", ActionMoveDown},
		{"k", ActionMoveUp},
		{"ctrl+d", ActionPageDown},
		{"ctrl+u", ActionPageUp},
		{"s", ActionOpenSortPicker},
		{"c", ActionOpenColumnPicker},
		{"enter", ActionActivate},
		{"G", ActionGoBottom},
		{"g", ActionGoTop},
		{"q", ActionQuit},
	}
	for _, tt := range tests {
		got, ok := tbl.Resolve(tt.sym)
		if !ok || got != tt.want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", tt.sym, got, ok, tt.want)
		}
	}
	if _, ok := tbl.Resolve("z"); ok {
		t.Fatalf("expected z to be unbound")
	}
}

func TestOverrideWinsOverDefault(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]string{
		"j":     "move-up",
		"space": "activate",
		"Enter": "open-sort-picker",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a, _ := tbl.Resolve("j"); a != ActionMoveUp {
		t.Fatalf("expected override j=move-up; got %q", a)
	}
	if a, _ := tbl.Resolve(" "); a != ActionActivate {
		t.Fatalf("expected space (reported as \" \") to resolve to activate; got %q", a)
	}
	if a, _ := tbl.Resolve("enter"); a != ActionOpenSortPicker {
		t.Fatalf("expected named keys to be case-insensitive; got %q", a)
	}
	// Untouched defaults survive.
	if a, _ := tbl.Resolve("k"); a != ActionMoveUp {
		t.Fatalf("expected default k=move-up; got %q", a)
	}
}

func TestUnbindRemovesDefault(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]string{"q": "none", "ctrl+c": ""})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tbl.Resolve("q"); ok {
		t.Fatalf("expected q to be unbound")
	}
	if _, ok := tbl.Resolve("ctrl+c"); ok {
		t.Fatalf("expected ctrl+c to be unbound")
	}
	if b := tbl.Binding(ActionQuit); b.Enabled() {
		t.Fatalf("expected quit binding to be disabled when no keys remain")
	}
}

func TestUnknownActionIsConfigurationError(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]string{"q": "self-destruct"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if tbl != nil {
		t.Fatalf("expected no table on error")
	}
	var uae *UnknownActionError
	if !errors.As(err, &uae) {
		t.Fatalf("expected *UnknownActionError; got %T", err)
	}
	if uae.Key != "q" || uae.Action != "self-destruct" {
		t.Fatalf("unexpected error fields: %+v", uae)
	}
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected errors.Is(err, ErrUnknownAction)")
	}
}

func TestKeysAndBinding(t *testing.T) {
	t.Parallel()

	tbl := MustDefault()
	if got, want := tbl.Keys(ActionMoveDown), []string{"j", "down"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys(move-down) = %v; want %v", got, want)
	}
	b := tbl.Binding(ActionMoveDown)
	if !key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, b) {
		t.Fatalf("expected binding to match j")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyDown}, b) {
		t.Fatalf("expected binding to match down arrow")
	}
	if got := b.Help().Key; got != "j/down" {
		t.Fatalf("help key = %q", got)
	}
}

func TestOverridesReportsOnlyChanges(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]string{"x": "activate", "j": "move-down"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := tbl.Overrides()
	want := map[string]Action{"x": ActionActivate}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Overrides = %v; want %v", got, want)
	}
}
