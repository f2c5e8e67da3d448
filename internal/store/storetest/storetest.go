// Package storetest builds Zotero data folders for tests.
package storetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// schema is the subset of the Zotero schema the loader reads.
var schema = []string{
	`CREATE TABLE itemTypes (itemTypeID INTEGER PRIMARY KEY, typeName TEXT);`,
	`CREATE TABLE items (itemID INTEGER PRIMARY KEY, itemTypeID INT, dateAdded TEXT, key TEXT);`,
	`CREATE TABLE deletedItems (itemID INTEGER PRIMARY KEY);`,
	`CREATE TABLE fields (fieldID INTEGER PRIMARY KEY, fieldName TEXT);`,
	`CREATE TABLE itemDataValues (valueID INTEGER PRIMARY KEY, value);`,
	`CREATE TABLE itemData (itemID INT, fieldID INT, valueID INT);`,
	`CREATE TABLE creators (creatorID INTEGER PRIMARY KEY, firstName TEXT, lastName TEXT, fieldMode INT);`,
	`CREATE TABLE itemCreators (itemID INT, creatorID INT, creatorTypeID INT, orderIndex INT);`,
	`CREATE TABLE collections (collectionID INTEGER PRIMARY KEY, collectionName TEXT);`,
	`CREATE TABLE collectionItems (collectionID INT, itemID INT, orderIndex INT);`,
	`CREATE TABLE itemAttachments (itemID INTEGER PRIMARY KEY, parentItemID INT, linkMode INT, contentType TEXT, path TEXT);`,
}

var library = []string{
	`INSERT INTO itemTypes VALUES (1, 'journalArticle'), (2, 'book'), (3, 'attachment'), (4, 'note');`,
	`INSERT INTO items VALUES
		(10, 1, '2020-01-02 03:04:05', 'AAAA1111'),
		(11, 2, '2019-06-01 00:00:00', 'BBBB2222'),
		(12, 1, '2021-03-04 05:06:07', 'CCCC3333'),
		(13, 1, '2018-01-01 00:00:00', 'DDDD4444'),
		(20, 3, '2020-01-02 03:04:05', 'ATT00001'),
		(21, 3, '2020-01-02 03:04:05', 'ATT00002'),
		(22, 3, '2020-01-02 03:04:05', 'ATT00003'),
		(23, 3, '2020-01-02 03:04:05', 'ATT00004'),
		(24, 3, '2020-01-02 03:04:05', 'ATT00005'),
		(30, 4, '2020-01-02 03:04:05', 'NOTE0001');`,
	`INSERT INTO deletedItems VALUES (13), (24);`,
	`INSERT INTO fields VALUES (1, 'title'), (2, 'date'), (3, 'publicationTitle'), (4, 'DOI'), (5, 'abstractNote');`,
	`INSERT INTO itemDataValues VALUES
		(1, 'Deep Learning'), (2, '2001-03-00 March 2001'), (3, 'Nature'),
		(4, 'A Book'), (5, '1999-00-00 1999'), (6, '10.1000/xyz'),
		(7, 'Third'), (8, 'long abstract');`,
	`INSERT INTO itemData VALUES
		(10, 1, 1), (10, 2, 2), (10, 3, 3), (10, 4, 6), (10, 5, 8),
		(11, 1, 4), (11, 2, 5),
		(12, 1, 7);`,
	`INSERT INTO creators VALUES (1, 'Yann', 'LeCun', 0), (2, 'Yoshua', 'Bengio', 0), (3, 'Geoffrey', 'Hinton', 0), (4, '', 'WHO', 1);`,
	`INSERT INTO itemCreators VALUES (10, 1, 1, 0), (10, 2, 1, 1), (10, 3, 1, 2), (11, 2, 1, 1), (11, 3, 1, 0), (12, 4, 1, 0);`,
	`INSERT INTO collections VALUES (1, 'ML'), (2, 'Classics');`,
	`INSERT INTO collectionItems VALUES (2, 10, 0), (1, 10, 1), (1, 11, 0);`,
	`INSERT INTO itemAttachments VALUES
		(20, 10, 1, 'application/pdf', 'storage:paper.pdf'),
		(21, 10, 2, 'application/pdf', '/abs/linked.pdf'),
		(22, 11, 2, 'text/html', NULL),
		(23, 11, 2, 'application/pdf', 'attachments:books/a.pdf'),
		(24, 12, 1, 'application/pdf', 'storage:gone.pdf');`,
}

// WriteLibrary creates a data folder holding a small Zotero database and returns its
// path. The library has three regular items (ids 10, 11, 12), one deleted item, five
// attachments (one deleted, one linked URL) and a note.
func WriteLibrary(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "zotero.sqlite"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()
	for _, stmt := range append(append([]string{}, schema...), library...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture %q: %v", stmt, err)
		}
	}
	return dir
}
