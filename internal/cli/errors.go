package cli

import "errors"

var errNotTerminal = errors.New("totero needs an interactive terminal (use `totero list` for plain output)")
