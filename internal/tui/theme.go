package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"totero-cli/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// EnvTheme forces the light or dark palette ("light", "dark", "auto").
const EnvTheme = "TOTERO_TUI_THEME"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorSurfaceFg  = ac("235", "252")
	colorWarning    = ac("160", "203")
)

// theme holds one style per palette tag. Rendering never looks styles up by name.
type theme struct {
	row            lipgloss.Style
	rowSelected    lipgloss.Style
	cellSelected   lipgloss.Style
	header         lipgloss.Style
	divider        lipgloss.Style
	title          lipgloss.Style
	modalTitle     lipgloss.Style
	modalBorder    lipgloss.Style
	option         lipgloss.Style
	optionSelected lipgloss.Style
	status         lipgloss.Style
	warning        lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		row:            lipgloss.NewStyle(),
		rowSelected:    lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg),
		cellSelected:   lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true),
		header:         lipgloss.NewStyle().Bold(true),
		divider:        lipgloss.NewStyle().Foreground(colorMuted),
		title:          lipgloss.NewStyle().Bold(true),
		modalTitle:     lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		modalBorder:    lipgloss.NewStyle().Foreground(colorAccent),
		option:         lipgloss.NewStyle().Foreground(colorSurfaceFg),
		optionSelected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
		status:         lipgloss.NewStyle().Foreground(colorMuted),
		warning:        lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
	}
}

// newTheme replaces the default style of every tag named in specs.
// Tags and colors were validated by config.Load.
func newTheme(specs map[string]config.StyleSpec) theme {
	th := defaultTheme()
	slots := map[string]*lipgloss.Style{
		config.TagRow:            &th.row,
		config.TagRowSelected:    &th.rowSelected,
		config.TagCellSelected:   &th.cellSelected,
		config.TagHeader:         &th.header,
		config.TagDivider:        &th.divider,
		config.TagTitle:          &th.title,
		config.TagModalTitle:     &th.modalTitle,
		config.TagModalBorder:    &th.modalBorder,
		config.TagOption:         &th.option,
		config.TagOptionSelected: &th.optionSelected,
		config.TagStatus:         &th.status,
		config.TagWarning:        &th.warning,
	}
	for tag, spec := range specs {
		if slot, ok := slots[tag]; ok {
			*slot = styleFromSpec(spec)
		}
	}
	return th
}

func styleFromSpec(spec config.StyleSpec) lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline)
	if fg := strings.TrimSpace(spec.Fg); fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg := strings.TrimSpace(spec.Bg); bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st
}

// applyColorProfilePreference sets Lip Gloss's color profile for the browser.
//
// termenv.EnvColorProfile also honors CLICOLOR, which is meant for piped output; here
// only NO_COLOR disables colors.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) TOTERO_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
// 3) macOS appearance
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvTheme))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
