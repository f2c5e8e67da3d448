// Package store reads records from a Zotero data folder.
//
// The Zotero SQLite database is opened read-only and immutable: Zotero keeps the file
// locked while it runs, and this program never writes to it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"totero-cli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	// DatabaseFileName is the Zotero database inside the data folder.
	DatabaseFileName = "zotero.sqlite"
	storageDirName   = "storage"
)

// Store is a Zotero data folder.
type Store struct {
	Dir string
}

func (s Store) DBPath() string {
	return filepath.Join(filepath.Clean(s.Dir), DatabaseFileName)
}

func (s Store) storageDir() string {
	return filepath.Join(filepath.Clean(s.Dir), storageDirName)
}

// Load reads every record once. Any failure is a *DataAccessError.
func (s Store) Load(ctx context.Context) ([]model.Record, error) {
	db, err := s.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadDB(ctx, db, s.Dir)
}

// Load is shorthand for Store{Dir: dir}.Load(ctx).
func Load(ctx context.Context, dir string) ([]model.Record, error) {
	return Store{Dir: dir}.Load(ctx)
}

// AttachmentsOf returns the record's attachments in load order (possibly empty).
func AttachmentsOf(r model.Record) []model.Attachment {
	out := make([]model.Attachment, len(r.Attachments))
	copy(out, r.Attachments)
	return out
}

func (s Store) openReadOnly(ctx context.Context) (*sql.DB, error) {
	dir := filepath.Clean(s.Dir)
	st, err := os.Stat(dir)
	if err != nil {
		return nil, &DataAccessError{Op: "open data folder", Path: dir, Err: err}
	}
	if !st.IsDir() {
		return nil, &DataAccessError{Op: "open data folder", Path: dir, Err: ErrNotDataFolder}
	}

	p, err := filepath.Abs(s.DBPath())
	if err != nil {
		return nil, &DataAccessError{Op: "open database", Path: s.DBPath(), Err: err}
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &DataAccessError{Op: "open database", Path: p, Err: ErrNotDataFolder}
		}
		return nil, &DataAccessError{Op: "open database", Path: p, Err: err}
	}

	// modernc.org/sqlite driver name is "sqlite"; it accepts SQLite URI filenames.
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p), RawQuery: "mode=ro&immutable=1"}
	db, err := sql.Open("sqlite", u.String())
	if err != nil {
		return nil, &DataAccessError{Op: "open database", Path: p, Err: err}
	}
	// Pragmas are per connection; keep a single one.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA query_only=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pr := range pragmas {
		if _, err := db.ExecContext(ctx, pr); err != nil {
			_ = db.Close()
			return nil, &DataAccessError{Op: "open database", Path: p, Err: err}
		}
	}
	return db, nil
}
