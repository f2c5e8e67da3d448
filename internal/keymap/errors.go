package keymap

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyKey      = errors.New("empty key symbol")
)

type UnknownActionError struct {
	Key    string
	Action string
	Err    error
}

func (e *UnknownActionError) Error() string {
	if errors.Is(e.Err, ErrEmptyKey) {
		return fmt.Sprintf("keys: %v (action %q)", e.Err, e.Action)
	}
	return fmt.Sprintf("keys: %q bound to %v %q", e.Key, e.Err, e.Action)
}

func (e *UnknownActionError) Unwrap() error { return e.Err }
