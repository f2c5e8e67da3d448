package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func abcPicker(prechecked ...string) picker {
	items := []pickerItem{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}, {Key: "c", Label: "C"}}
	return newPicker(modalSortPicker, "Pick", items, prechecked, false, nil)
}

func TestPicker_ToggleTwiceRestoresState(t *testing.T) {
	t.Parallel()

	for _, pre := range [][]string{nil, {"b"}, {"c", "a"}, {"a", "b", "c"}} {
		p := abcPicker(pre...)
		for _, k := range []string{"a", "b", "c"} {
			got := p.toggle(k).toggle(k)
			if p.position(k) < 0 || p.position(k) == len(p.checked)-1 {
				// Unchecked or last-checked: order is fully restored.
				if !reflect.DeepEqual(got.selection(), p.selection()) {
					t.Fatalf("pre=%v toggle %q twice: %v; want %v", pre, k, got.selection(), p.selection())
				}
				continue
			}
			// Earlier keys are re-appended: same checked set, k moves last.
			if len(got.checked) != len(p.checked) || got.position(k) != len(got.checked)-1 {
				t.Fatalf("pre=%v toggle %q twice: %v", pre, k, got.selection())
			}
		}
	}
}

func TestPicker_ToggleUncheckedTwiceIsIdentity(t *testing.T) {
	t.Parallel()

	p := abcPicker("c", "a")
	got := p.toggle("b").toggle("b")
	if !reflect.DeepEqual(got.selection(), []string{"c", "a"}) {
		t.Fatalf("selection = %v", got.selection())
	}
}

func TestPicker_CheckOrder(t *testing.T) {
	t.Parallel()

	p := abcPicker()
	p = p.toggle("b").toggle("a")
	if got, want := p.selection(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("selection = %v; want %v", got, want)
	}
	p = p.toggle("b")
	if got, want := p.selection(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after uncheck = %v; want %v", got, want)
	}
	p = p.toggle("b")
	if got, want := p.selection(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("re-check appends: %v; want %v", got, want)
	}
}

func TestPicker_CopiesAreIndependent(t *testing.T) {
	t.Parallel()

	p := abcPicker("a")
	q := p.toggle("b")
	q.checked[0] = "zzz"
	if !reflect.DeepEqual(p.selection(), []string{"a"}) {
		t.Fatalf("original changed: %v", p.checked)
	}
	sel := p.selection()
	sel[0] = "zzz"
	if p.checked[0] != "a" {
		t.Fatalf("selection must be a copy")
	}
}

func TestPicker_PrecheckedFiltersUnknownAndDuplicates(t *testing.T) {
	t.Parallel()

	p := abcPicker("c", "nope", "c", "a")
	if got, want := p.selection(), []string{"c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("selection = %v; want %v", got, want)
	}
	if q := p.toggle("nope"); !reflect.DeepEqual(q.selection(), p.selection()) {
		t.Fatalf("unknown key must be ignored")
	}
}

func TestPicker_Keys(t *testing.T) {
	t.Parallel()

	p := abcPicker()
	var out pickerOutcome
	p, out = p.handleKey("k")
	if p.cursor != 0 || out != pickerOpen {
		t.Fatalf("cursor clamps at top: %d", p.cursor)
	}
	p, _ = p.handleKey("end")
	p, _ = p.handleKey("j")
	if p.cursor != 2 {
		t.Fatalf("cursor clamps at bottom: %d", p.cursor)
	}
	p, _ = p.handleKey("x")
	if !reflect.DeepEqual(p.selection(), []string{"c"}) {
		t.Fatalf("x toggles: %v", p.selection())
	}
	if _, out = p.handleKey("enter"); out != pickerConfirmed {
		t.Fatalf("enter confirms")
	}
	for _, k := range []string{"esc", "ctrl+g", "q"} {
		if _, out = p.handleKey(k); out != pickerCancelled {
			t.Fatalf("%s cancels", k)
		}
	}
	if _, out = p.handleKey("z"); out != pickerOpen {
		t.Fatalf("unknown key keeps picker open")
	}
}

func TestPicker_SingleSelectConfirmsOnFirstToggle(t *testing.T) {
	t.Parallel()

	items := []pickerItem{{Key: "0", Label: "one"}, {Key: "1", Label: "two"}}
	p := newPicker(modalAttachmentPicker, "Open", items, nil, true, nil)
	p, _ = p.handleKey("down")
	p, out := p.handleKey("space")
	if out != pickerConfirmed {
		t.Fatalf("expected confirm on first toggle")
	}
	if got := p.selection(); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("selection = %v", got)
	}

	empty := newPicker(modalAttachmentPicker, "Open", nil, nil, true, nil)
	if _, out := empty.handleKey("enter"); out != pickerCancelled {
		t.Fatalf("single-select with nothing to choose cancels")
	}
}

func TestPicker_CommitReceivesOrderedSelection(t *testing.T) {
	var got []string
	items := []pickerItem{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}}
	p := newPicker(modalColumnPicker, "Cols", items, nil, false, func(m appModel, keys []string) (appModel, tea.Cmd) {
		got = keys
		return m, nil
	})

	m := newTestModel(t, nil, nil)
	m.modal = &p
	m, _ = press(t, m, "j", "space", "k", "space", "enter")
	if want := []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("commit got %v; want %v", got, want)
	}
	if m.modal != nil {
		t.Fatalf("expected picker closed")
	}
}

func TestPicker_CancelSkipsCommit(t *testing.T) {
	called := false
	items := []pickerItem{{Key: "a", Label: "A"}}
	p := newPicker(modalColumnPicker, "Cols", items, nil, false, func(m appModel, keys []string) (appModel, tea.Cmd) {
		called = true
		return m, nil
	})

	m := newTestModel(t, nil, nil)
	m.modal = &p
	m, _ = press(t, m, "space", "esc")
	if called {
		t.Fatalf("cancel must not call commit")
	}
	if m.modal != nil {
		t.Fatalf("expected picker closed")
	}
}
