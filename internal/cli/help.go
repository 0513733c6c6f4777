// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// HelpMarkdown is the long help shown by --help.
const HelpMarkdown = "# tokenbox\n\n" +
	"Type text and it becomes tokens. The committed tokens are printed to stdout, " +
	"joined by the delimiter, when you finish.\n\n" +
	"## Usage\n\n" +
	"```\n" + Usage + "```\n\n" +
	"## Keys\n\n" +
	"| Key | Action |\n" +
	"| --- | --- |\n" +
	"| `space` | commit the typed text (the configured delimiter) |\n" +
	"| `enter` | commit the highlighted suggestion or the text, finish on empty input |\n" +
	"| `tab` | open suggestions or accept the highlighted one |\n" +
	"| `up` / `down` | move through suggestions |\n" +
	"| `left` / `right` | move between tokens, `shift` extends the selection |\n" +
	"| `backspace` / `delete` | remove the selected tokens |\n" +
	"| `ctrl+a` | select everything |\n" +
	"| `ctrl+y` / `ctrl+x` | copy / cut the selection |\n" +
	"| `esc` | clear the selection |\n" +
	"| `ctrl+c` | abort without output |\n\n" +
	"## Files\n\n" +
	"- `~/.tokenbox/config.toml` configuration\n" +
	"- `~/.tokenbox/catalog.toml` suggestion catalog, reloaded on change\n" +
	"- `~/.tokenbox/history.db` usage counts that rank suggestions\n" +
	"- `~/.tokenbox/presets/` saved token sets\n"

var (
	rendererOnce     sync.Once
	markdownRenderer *glamour.TermRenderer
)

// renderMarkdown renders markdown for the terminal, or returns content
// unchanged when no renderer is available.
func renderMarkdown(content string) string {
	rendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// DisplayHelp writes the long help to w, rendered when tty is set.
func DisplayHelp(w io.Writer, tty bool) {
	if tty {
		fmt.Fprint(w, renderMarkdown(HelpMarkdown))
		return
	}
	fmt.Fprint(w, HelpMarkdown)
}
