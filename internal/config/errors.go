package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownThemeTag = errors.New("unknown theme tag")
	ErrInvalidColor    = errors.New("invalid color")
)

// Error is a configuration error. It is reported at startup and the browser never starts.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type UnknownSettingError struct {
	Keys []string
}

func (e *UnknownSettingError) Error() string {
	return "unknown settings: " + strings.Join(e.Keys, ", ")
}

type ThemeError struct {
	Tag   string
	Value string
	Err   error
}

func (e *ThemeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("theme.%s: %v %q", e.Tag, e.Err, e.Value)
	}
	return fmt.Sprintf("theme.%s: %v", e.Tag, e.Err)
}

func (e *ThemeError) Unwrap() error { return e.Err }

type ColumnWeightError struct {
	Column string
	Weight int
}

func (e *ColumnWeightError) Error() string {
	return fmt.Sprintf("columns.weights.%s: weight must be positive (got %d)", e.Column, e.Weight)
}
