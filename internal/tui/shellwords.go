package tui

import (
	"os"
	"strings"
	"unicode"
)

// EnvOpener replaces the system file handler, e.g. TOTERO_OPENER="zathura --fork".
const EnvOpener = "TOTERO_OPENER"

// LauncherFromEnv returns the system launcher, using $TOTERO_OPENER when set.
func LauncherFromEnv() SystemLauncher {
	return SystemLauncher{Command: splitCommand(os.Getenv(EnvOpener))}
}

// splitCommand splits a command line into argv. Single and double quotes group
// words; a backslash escapes the next rune except inside single quotes.
func splitCommand(s string) []string {
	var (
		out      []string
		cur      strings.Builder
		started  bool
		inSingle bool
		inDouble bool
		escaped  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped, started = true, true
		case r == '\'' && !inDouble:
			inSingle, started = !inSingle, true
		case r == '"' && !inSingle:
			inDouble, started = !inDouble, true
		case unicode.IsSpace(r) && !inSingle && !inDouble:
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		out = append(out, cur.String())
	}
	return out
}
