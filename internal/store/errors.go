package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotDataFolder = errors.New("not a Zotero data folder (zotero.sqlite missing)")
	ErrDuplicateID   = errors.New("duplicate item id")
)

// DataAccessError reports an unreadable or malformed data source. It is fatal to the
// session: the browser never starts without records.
type DataAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *DataAccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("zotero: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("zotero: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }
