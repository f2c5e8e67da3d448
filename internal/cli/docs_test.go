package cli

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestDocs_ListsTopics(t *testing.T) {
	isolateConfig(t)
	stubBrowser(t, false)

	out, err := runCLI(t, "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if got := strings.Fields(out); strings.Join(got, ",") != "config,keys,zotero" {
		t.Fatalf("topics = %v", got)
	}
}

func TestDocs_RawWhenNotATerminal(t *testing.T) {
	isolateConfig(t)
	stubBrowser(t, false)

	out, err := runCLI(t, "docs", "keys")
	if err != nil {
		t.Fatalf("docs keys: %v", err)
	}
	if !strings.HasPrefix(out, "# Keys") || !strings.Contains(out, "`open-sort-picker`") {
		t.Fatalf("expected raw markdown:\n%s", out)
	}
}

func TestDocs_RendersOnATerminal(t *testing.T) {
	isolateConfig(t)
	stubBrowser(t, true)
	t.Setenv("TOTERO_TUI_THEME", "light")

	out, err := runCLI(t, "docs", "zotero")
	if err != nil {
		t.Fatalf("docs zotero: %v", err)
	}
	plain := xansi.Strip(out)
	if strings.HasPrefix(plain, "# Zotero") || !strings.Contains(plain, "Zotero") || !strings.Contains(plain, "zotero.sqlite") {
		t.Fatalf("expected rendered markdown:\n%s", out)
	}

	raw, err := runCLI(t, "docs", "--raw", "zotero")
	if err != nil {
		t.Fatalf("docs --raw: %v", err)
	}
	if !strings.HasPrefix(raw, "# Zotero library") {
		t.Fatalf("--raw should skip rendering:\n%s", raw)
	}
}

func TestDocs_UnknownTopic(t *testing.T) {
	isolateConfig(t)
	stubBrowser(t, false)

	_, err := runCLI(t, "docs", "nope")
	if err == nil || !strings.Contains(err.Error(), `unknown docs topic: "nope"`) {
		t.Fatalf("expected unknown topic error; got %v", err)
	}
}
