// Package table holds the column registry and the sort engine of the record browser.
package table

import (
	"strconv"
	"strings"
	"time"

	"totero-cli/internal/model"
)

// Kind is the capability a column needs for display and sorting. One implementation
// exists per column kind; columns of the same kind differ only in the field they read.
type Kind interface {
	Extract(r model.Record) (string, bool)
	// Compare orders two present values; it must be a total order.
	Compare(a, b string) int
}

type Column struct {
	Name           string
	Header         string
	Kind           Kind
	DefaultVisible bool
	// Weight is the relative share of the table width (>= 1).
	Weight int
}

// EffectiveWeight is Weight with a floor of 1.
func (c Column) EffectiveWeight() int {
	if c.Weight < 1 {
		return 1
	}
	return c.Weight
}

// TextKind compares case-insensitively, falling back to byte order for equal folds.
type TextKind struct{ Field string }

func (k TextKind) Extract(r model.Record) (string, bool) { return r.Field(k.Field) }

func (k TextKind) Compare(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// NumberKind compares integers numerically; non-numeric values sort after numbers.
type NumberKind struct{ Field string }

func (k NumberKind) Extract(r model.Record) (string, bool) { return r.Field(k.Field) }

func (k NumberKind) Compare(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmpInt64(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// TimeKind parses values with Layout; unparsable values sort after valid times.
type TimeKind struct {
	Field  string
	Layout string
}

func (k TimeKind) Extract(r model.Record) (string, bool) { return r.Field(k.Field) }

func (k TimeKind) Compare(a, b string) int {
	ta, errA := time.Parse(k.Layout, a)
	tb, errB := time.Parse(k.Layout, b)
	switch {
	case errA == nil && errB == nil:
		return ta.Compare(tb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareValues puts absent values after present ones.
func compareValues(k Kind, a string, aok bool, b string, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return k.Compare(a, b)
}

// DateTimeLayout is the layout of Zotero's dateAdded column.
const DateTimeLayout = "2006-01-02 15:04:05"

// ZoteroColumns returns the columns known for Zotero records, in registry order.
func ZoteroColumns() []Column {
	return []Column{
		{Name: model.FieldAuthor, Header: "Author", Kind: TextKind{Field: model.FieldAuthor}, DefaultVisible: true, Weight: 2},
		{Name: model.FieldTitle, Header: "Title", Kind: TextKind{Field: model.FieldTitle}, DefaultVisible: true, Weight: 5},
		{Name: model.FieldPublicationTitle, Header: "Publication", Kind: TextKind{Field: model.FieldPublicationTitle}, DefaultVisible: true, Weight: 3},
		{Name: model.FieldYear, Header: "Year", Kind: NumberKind{Field: model.FieldYear}, DefaultVisible: true, Weight: 1},
		{Name: model.FieldTimeAdded, Header: "Added", Kind: TimeKind{Field: model.FieldTimeAdded, Layout: DateTimeLayout}, DefaultVisible: true, Weight: 2},
		{Name: model.FieldItemType, Header: "Type", Kind: TextKind{Field: model.FieldItemType}, Weight: 1},
		{Name: model.FieldCollections, Header: "Collections", Kind: TextKind{Field: model.FieldCollections}, Weight: 2},
		{Name: model.FieldDOI, Header: "DOI", Kind: TextKind{Field: model.FieldDOI}, Weight: 2},
		{Name: model.FieldURL, Header: "URL", Kind: TextKind{Field: model.FieldURL}, Weight: 2},
		{Name: model.FieldKey, Header: "Key", Kind: TextKind{Field: model.FieldKey}, Weight: 1},
	}
}
