package table

import (
	"fmt"
	"sort"
	"strings"

	"totero-cli/internal/model"
)

type SortKey struct {
	Column string
	Desc   bool
}

// Spec is an ordered list of sort keys; earlier keys take precedence.
// An empty Spec keeps load order.
type Spec []SortKey

func (s Spec) Index(column string) int {
	for i, k := range s {
		if k.Column == column {
			return i
		}
	}
	return -1
}

func (s Spec) Columns() []string {
	out := make([]string, 0, len(s))
	for _, k := range s {
		out = append(out, k.Column)
	}
	return out
}

// Validate checks that every column is registered and appears once.
func (s Spec) Validate(reg *Registry) error {
	seen := map[string]bool{}
	for _, k := range s {
		if _, ok := reg.Lookup(k.Column); !ok {
			return &UnknownColumnError{Name: k.Column}
		}
		if seen[k.Column] {
			return &UnknownColumnError{Name: k.Column, Duplicate: true}
		}
		seen[k.Column] = true
	}
	return nil
}

// Reorder builds the spec for a new ordered column selection: columns already in s keep
// their direction, new columns sort ascending.
func (s Spec) Reorder(columns []string) Spec {
	out := make(Spec, 0, len(columns))
	for _, c := range columns {
		desc := false
		if i := s.Index(c); i >= 0 {
			desc = s[i].Desc
		}
		out = append(out, SortKey{Column: c, Desc: desc})
	}
	return out
}

// Toggle flips the direction of column if it is a key; otherwise column becomes the
// only key, ascending.
func (s Spec) Toggle(column string) Spec {
	if i := s.Index(column); i >= 0 {
		out := make(Spec, len(s))
		copy(out, s)
		out[i].Desc = !out[i].Desc
		return out
	}
	return Spec{{Column: column}}
}

// ParseSpec reads "column[:asc|:desc]" keys, e.g. "year:desc" or "author".
func ParseSpec(keys []string) (Spec, error) {
	out := make(Spec, 0, len(keys))
	for _, raw := range keys {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name, dir, hasDir := strings.Cut(raw, ":")
		k := SortKey{Column: strings.TrimSpace(name)}
		if hasDir {
			switch strings.ToLower(strings.TrimSpace(dir)) {
			case "asc":
			case "desc":
				k.Desc = true
			default:
				return nil, fmt.Errorf("sort key %q: %w", raw, ErrSortDirection)
			}
		}
		out = append(out, k)
	}
	return out, nil
}

func (s Spec) String() string {
	if len(s) == 0 {
		return "load order"
	}
	parts := make([]string, 0, len(s))
	for _, k := range s {
		dir := "asc"
		if k.Desc {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("%s %s", k.Column, dir))
	}
	return strings.Join(parts, ", ")
}

// Sort returns a new slice ordered by spec. Records equal under every key keep their
// relative input order. records is not modified. Keys naming unregistered columns are
// skipped.
func Sort(records []model.Record, spec Spec, reg *Registry) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	if len(spec) == 0 || len(out) < 2 {
		return out
	}

	type keyCol struct {
		kind Kind
		desc bool
	}
	keys := make([]keyCol, 0, len(spec))
	for _, k := range spec {
		col, ok := reg.Lookup(k.Column)
		if !ok {
			continue
		}
		keys = append(keys, keyCol{kind: col.Kind, desc: k.Desc})
	}
	if len(keys) == 0 {
		return out
	}

	// Extract once per record and key; sort a permutation so values travel with rows.
	type cell struct {
		v  string
		ok bool
	}
	vals := make([][]cell, len(out))
	for i, r := range out {
		row := make([]cell, len(keys))
		for j, k := range keys {
			row[j].v, row[j].ok = k.kind.Extract(r)
		}
		vals[i] = row
	}
	perm := make([]int, len(out))
	for i := range perm {
		perm[i] = i
	}

	sort.SliceStable(perm, func(a, b int) bool {
		va, vb := vals[perm[a]], vals[perm[b]]
		for j, k := range keys {
			c := compareValues(k.kind, va[j].v, va[j].ok, vb[j].v, vb[j].ok)
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	sorted := make([]model.Record, len(out))
	for i, p := range perm {
		sorted[i] = out[p]
	}
	return sorted
}
