package table

import (
	"errors"
	"fmt"
)

var ErrSortDirection = errors.New("sort direction must be asc or desc")

type UnknownColumnError struct {
	Name      string
	Duplicate bool
}

func (e *UnknownColumnError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("column %q listed more than once", e.Name)
	}
	return fmt.Sprintf("unknown column %q", e.Name)
}
