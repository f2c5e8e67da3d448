package table

import (
	"fmt"
	"sort"
)

// Registry owns the ordered set of known columns and the ordered visible subset.
type Registry struct {
	cols    []Column
	byName  map[string]int
	visible []string
}

// NewRegistry registers cols in order. Duplicate names are a programming error.
func NewRegistry(cols ...Column) *Registry {
	r := &Registry{byName: make(map[string]int, len(cols))}
	for _, c := range cols {
		if _, dup := r.byName[c.Name]; dup {
			panic(fmt.Sprintf("table: column %q registered twice", c.Name))
		}
		r.byName[c.Name] = len(r.cols)
		r.cols = append(r.cols, c)
		if c.DefaultVisible {
			r.visible = append(r.visible, c.Name)
		}
	}
	return r
}

// DefaultRegistry registers the Zotero columns.
func DefaultRegistry() *Registry { return NewRegistry(ZoteroColumns()...) }

func (r *Registry) All() []Column {
	out := make([]Column, len(r.cols))
	copy(out, r.cols)
	return out
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cols))
	for _, c := range r.cols {
		out = append(out, c.Name)
	}
	return out
}

func (r *Registry) Lookup(name string) (Column, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Column{}, false
	}
	return r.cols[i], true
}

func (r *Registry) Visible() []Column {
	out := make([]Column, 0, len(r.visible))
	for _, name := range r.visible {
		out = append(out, r.cols[r.byName[name]])
	}
	return out
}

func (r *Registry) VisibleNames() []string {
	out := make([]string, len(r.visible))
	copy(out, r.visible)
	return out
}

// SetVisible atomically replaces the visible subset and its order.
// It fails with *UnknownColumnError without changing anything.
func (r *Registry) SetVisible(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			return &UnknownColumnError{Name: n}
		}
		if seen[n] {
			return &UnknownColumnError{Name: n, Duplicate: true}
		}
		seen[n] = true
	}
	next := make([]string, len(names))
	copy(next, names)
	r.visible = next
	return nil
}

// SetWeights overrides width weights. Unknown names fail with *UnknownColumnError.
func (r *Registry) SetWeights(weights map[string]int) error {
	names := make([]string, 0, len(weights))
	for n := range weights {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			return &UnknownColumnError{Name: n}
		}
	}
	for _, n := range names {
		r.cols[r.byName[n]].Weight = weights[n]
	}
	return nil
}
