package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"totero-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrNoLocalPath = errors.New("attachment has no local path")

// LaunchError reports a failed hand-off to the system file handler. It is shown as a
// warning; the session continues.
type LaunchError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("open %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("open %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Launcher opens a file with the user's default application.
type Launcher interface {
	Open(path string) error
}

// SystemLauncher uses open (macOS), start (Windows) or xdg-open.
type SystemLauncher struct {
	// Command overrides the handler command; the path is appended as the last argument.
	Command []string
}

func (l SystemLauncher) command(path string) (string, []string) {
	if len(l.Command) > 0 {
		args := append(append([]string{}, l.Command[1:]...), path)
		return l.Command[0], args
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	}
	return "xdg-open", []string{path}
}

// Open waits for the handler command only; it returns as soon as the viewer is started.
func (l SystemLauncher) Open(path string) error {
	if strings.TrimSpace(path) == "" {
		return &LaunchError{Path: path, Reason: "no local path", Err: ErrNoLocalPath}
	}
	if _, err := os.Stat(path); err != nil {
		return &LaunchError{Path: path, Reason: "file not found", Err: err}
	}

	name, args := l.command(path)
	cmd := exec.Command(name, args...)
	// Keep handler chatter off the browser's screen.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return &LaunchError{Path: path, Reason: "cannot run " + name, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		return launchError(path, err)
	}
	return nil
}

// xdg-open exit statuses.
var handlerExitReasons = map[int]string{
	1: "handler rejected the command line",
	2: "file not found",
	3: "no application registered for this file type",
	4: "the application failed to open the file",
}

func launchError(path string, err error) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if reason, ok := handlerExitReasons[ee.ExitCode()]; ok {
			return &LaunchError{Path: path, Reason: reason, Err: err}
		}
		return &LaunchError{Path: path, Reason: fmt.Sprintf("handler exited with status %d", ee.ExitCode()), Err: err}
	}
	return &LaunchError{Path: path, Reason: "handler failed", Err: err}
}

type attachmentOpenDoneMsg struct {
	path string
	err  error
}

// openAttachment runs the launcher off the event loop.
func (m appModel) openAttachment(a model.Attachment) tea.Cmd {
	p := strings.TrimSpace(a.Path)
	if p == "" {
		label := a.Label
		return func() tea.Msg {
			return attachmentOpenDoneMsg{path: label, err: &LaunchError{Path: label, Reason: "no local path", Err: ErrNoLocalPath}}
		}
	}
	launcher := m.launcher
	m.log.Info().Str("path", p).Msg("open attachment")
	return func() tea.Msg {
		return attachmentOpenDoneMsg{path: p, err: launcher.Open(p)}
	}
}
