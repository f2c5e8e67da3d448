package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"totero-cli/internal/model"
)

const (
	itemsQuery = `SELECT i.itemID, i.key, i.dateAdded, t.typeName
FROM items i
JOIN itemTypes t ON t.itemTypeID = i.itemTypeID
WHERE t.typeName NOT IN ('attachment', 'note', 'annotation')
  AND i.itemID NOT IN (SELECT itemID FROM deletedItems)
ORDER BY i.itemID`

	fieldsQuery = `SELECT d.itemID, f.fieldName, v.value
FROM itemData d
JOIN fields f ON f.fieldID = d.fieldID
JOIN itemDataValues v ON v.valueID = d.valueID
WHERE f.fieldName IN ('title', 'publicationTitle', 'date', 'DOI', 'url')`

	creatorsQuery = `SELECT ic.itemID, c.firstName, c.lastName, c.fieldMode
FROM itemCreators ic
JOIN creators c ON c.creatorID = ic.creatorID
ORDER BY ic.itemID, ic.orderIndex`

	collectionsQuery = `SELECT ci.itemID, c.collectionName
FROM collectionItems ci
JOIN collections c ON c.collectionID = ci.collectionID
ORDER BY ci.itemID, c.collectionName`

	attachmentsQuery = `SELECT a.parentItemID, i.key, a.path, a.contentType
FROM itemAttachments a
JOIN items i ON i.itemID = a.itemID
WHERE a.parentItemID IS NOT NULL
  AND a.itemID NOT IN (SELECT itemID FROM deletedItems)
ORDER BY a.parentItemID, a.itemID`
)

// Zotero field names mapped to record columns.
var zoteroFields = map[string]string{
	"title":            model.FieldTitle,
	"publicationTitle": model.FieldPublicationTitle,
	"DOI":              model.FieldDOI,
	"url":              model.FieldURL,
}

// LoadDB reads records from an open Zotero database. dir is the data folder used to
// resolve stored attachment paths.
func LoadDB(ctx context.Context, db *sql.DB, dir string) ([]model.Record, error) {
	l := loader{db: db, dir: dir, byID: map[int64]int{}}
	steps := []struct {
		op  string
		run func(context.Context) error
	}{
		{"read items", l.readItems},
		{"read fields", l.readFields},
		{"read creators", l.readCreators},
		{"read collections", l.readCollections},
		{"read attachments", l.readAttachments},
	}
	for _, st := range steps {
		if err := st.run(ctx); err != nil {
			return nil, &DataAccessError{Op: st.op, Path: dir, Err: err}
		}
	}
	return l.records, nil
}

type loader struct {
	db      *sql.DB
	dir     string
	records []model.Record
	byID    map[int64]int
}

func (l *loader) record(id int64) *model.Record {
	i, ok := l.byID[id]
	if !ok {
		return nil
	}
	return &l.records[i]
}

func (l *loader) readItems(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, itemsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id        int64
			key       string
			dateAdded sql.NullString
			typeName  string
		)
		if err := rows.Scan(&id, &key, &dateAdded, &typeName); err != nil {
			return err
		}
		if _, dup := l.byID[id]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		r := model.Record{
			ID:  id,
			Key: key,
			Fields: map[string]string{
				model.FieldKey:      key,
				model.FieldItemType: typeName,
			},
		}
		if dateAdded.Valid && strings.TrimSpace(dateAdded.String) != "" {
			r.Fields[model.FieldTimeAdded] = strings.TrimSpace(dateAdded.String)
		}
		l.byID[id] = len(l.records)
		l.records = append(l.records, r)
	}
	return rows.Err()
}

func (l *loader) readFields(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, fieldsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    int64
			field string
			value sql.NullString
		)
		if err := rows.Scan(&id, &field, &value); err != nil {
			return err
		}
		r := l.record(id)
		if r == nil || !value.Valid {
			continue
		}
		if field == "date" {
			if y := yearOf(value.String); y != "" {
				r.Fields[model.FieldYear] = y
			}
			continue
		}
		if col, ok := zoteroFields[field]; ok {
			r.Fields[col] = value.String
		}
	}
	return rows.Err()
}

type creatorName struct {
	first string
	last  string
}

func (l *loader) readCreators(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, creatorsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()
	names := map[int64][]creatorName{}
	for rows.Next() {
		var (
			id        int64
			first     sql.NullString
			last      sql.NullString
			fieldMode sql.NullInt64
		)
		if err := rows.Scan(&id, &first, &last, &fieldMode); err != nil {
			return err
		}
		if l.record(id) == nil {
			continue
		}
		n := creatorName{first: strings.TrimSpace(first.String), last: strings.TrimSpace(last.String)}
		// fieldMode 1: single-field name stored in lastName.
		if fieldMode.Valid && fieldMode.Int64 == 1 {
			n.first = ""
		}
		names[id] = append(names[id], n)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for id, ns := range names {
		if a := formatAuthors(ns); a != "" {
			l.record(id).Fields[model.FieldAuthor] = a
		}
	}
	return nil
}

func (l *loader) readCollections(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, collectionsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()
	names := map[int64][]string{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		if l.record(id) == nil {
			continue
		}
		names[id] = append(names[id], name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for id, ns := range names {
		l.record(id).Fields[model.FieldCollections] = strings.Join(ns, "; ")
	}
	return nil
}

func (l *loader) readAttachments(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, attachmentsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			parentID    int64
			key         string
			path        sql.NullString
			contentType sql.NullString
		)
		if err := rows.Scan(&parentID, &key, &path, &contentType); err != nil {
			return err
		}
		r := l.record(parentID)
		// NULL path is a linked URL; nothing to open locally.
		if r == nil || !path.Valid || strings.TrimSpace(path.String) == "" {
			continue
		}
		a := resolveAttachment(l.dir, key, path.String)
		a.ContentType = contentType.String
		r.Attachments = append(r.Attachments, a)
	}
	return rows.Err()
}

// resolveAttachment maps Zotero's stored path forms onto the file system:
//
//	storage:<name>      stored file, <dir>/storage/<key>/<name>
//	attachments:<rel>   relative to the user's base directory (unknown here; unresolved)
//	/abs/path           linked file
func resolveAttachment(dir, key, raw string) model.Attachment {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "storage:"):
		name := strings.TrimPrefix(raw, "storage:")
		return model.Attachment{
			Label: name,
			Path:  filepath.Join(Store{Dir: dir}.storageDir(), key, filepath.FromSlash(name)),
		}
	case strings.HasPrefix(raw, "attachments:"):
		rel := strings.TrimPrefix(raw, "attachments:")
		return model.Attachment{Label: filepath.Base(filepath.FromSlash(rel))}
	default:
		return model.Attachment{Label: filepath.Base(raw), Path: raw}
	}
}

var yearRe = regexp.MustCompile(`\d{4}`)

// yearOf extracts the year from Zotero's multipart date ("2001-03-00 March 2001").
func yearOf(date string) string {
	return yearRe.FindString(date)
}

// formatAuthors renders "Last", "Last and Other" or "Last et al.".
func formatAuthors(ns []creatorName) string {
	var names []string
	for _, n := range ns {
		switch {
		case n.last != "":
			names = append(names, n.last)
		case n.first != "":
			names = append(names, n.first)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return names[0] + " et al."
}
