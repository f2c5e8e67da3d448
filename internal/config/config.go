// Package config loads the user's key bindings, theme and column preferences.
//
// The file is TOML:
//
//	[keys]
//	x = "activate"
//	q = "none"          # unbind a default
//
//	[theme.row-selected]
//	fg = "#ffffff"
//	bg = "62"
//	bold = true
//
//	[columns]
//	visible = ["author", "title", "year"]
//	sort = ["year:desc", "author"]
//
//	[columns.weights]
//	title = 4
package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"totero-cli/internal/keymap"
	"totero-cli/internal/table"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigPath  = "TOTERO_CONFIG"
	configDirName  = "totero"
	configFileName = "config.toml"
)

// Theme tags understood by the renderer.
const (
	TagRow            = "row"
	TagRowSelected    = "row-selected"
	TagCellSelected   = "cell-selected"
	TagHeader         = "header"
	TagDivider        = "divider"
	TagTitle          = "title"
	TagModalTitle     = "modal-title"
	TagModalBorder    = "modal-border"
	TagOption         = "option"
	TagOptionSelected = "option-selected"
	TagStatus         = "status"
	TagWarning        = "warning"
)

var ThemeTags = []string{
	TagRow,
	TagRowSelected,
	TagCellSelected,
	TagHeader,
	TagDivider,
	TagTitle,
	TagModalTitle,
	TagModalBorder,
	TagOption,
	TagOptionSelected,
	TagStatus,
	TagWarning,
}

type StyleSpec struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
}

type ColumnsConfig struct {
	Visible []string `toml:"visible"`
	// Sort is the initial sort, e.g. ["year:desc", "author"].
	Sort    []string       `toml:"sort"`
	Weights map[string]int `toml:"weights"`
}

// Config is built once before the browser starts and passed to it explicitly.
type Config struct {
	Keys    map[string]string    `toml:"keys"`
	Theme   map[string]StyleSpec `toml:"theme"`
	Columns ColumnsConfig        `toml:"columns"`

	// Path is the file the config was read from ("" for built-in defaults).
	Path string `toml:"-"`
	// Bindings is the resolved binding table.
	Bindings *keymap.Table `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Keys:     map[string]string{},
		Theme:    map[string]StyleSpec{},
		Bindings: keymap.MustDefault(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/totero/config.toml (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Resolve picks the config file: explicit path, then $TOTERO_CONFIG, then the default
// location. explicit reports whether the user asked for this file (missing => error).
func Resolve(flagPath string) (path string, explicit bool) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, true
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true
	}
	p, err := DefaultPath()
	if err != nil {
		return "", false
	}
	return p, false
}

// Load reads and validates a config file. A missing non-explicit file yields defaults.
// Every failure is an *Error.
func Load(path string, explicit bool) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, &Error{Path: path, Err: err}
	}
	cfg.Path = path

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, &Error{Path: path, Err: &UnknownSettingError{Keys: keys}}
	}

	if err := cfg.validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	if c.Theme == nil {
		c.Theme = map[string]StyleSpec{}
	}

	bindings, err := keymap.New(c.Keys)
	if err != nil {
		return err
	}
	c.Bindings = bindings

	tags := make([]string, 0, len(c.Theme))
	for tag := range c.Theme {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if !knownTag(tag) {
			return &ThemeError{Tag: tag, Err: ErrUnknownThemeTag}
		}
		spec := c.Theme[tag]
		for _, col := range []string{spec.Fg, spec.Bg} {
			if !validColor(col) {
				return &ThemeError{Tag: tag, Value: col, Err: ErrInvalidColor}
			}
		}
	}

	if _, err := table.ParseSpec(c.Columns.Sort); err != nil {
		return err
	}

	for name, w := range c.Columns.Weights {
		if w <= 0 {
			return &ColumnWeightError{Column: name, Weight: w}
		}
	}
	return nil
}

func knownTag(tag string) bool {
	for _, t := range ThemeTags {
		if t == tag {
			return true
		}
	}
	return false
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validColor accepts "", "#rgb", "#rrggbb" and ANSI 0-255.
func validColor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if hexColorRe.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}
