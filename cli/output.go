package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/ui"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColor decides whether styled output is written to w.
func (c *CLI) useColor(w io.Writer) bool {
	if c.noColor || c.jsonOutput {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	switch c.cfg.Color {
	case common.ColorAlways:
		return true
	case common.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

// printJSON writes data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printHint prints a subtle suggestion.
func (c *CLI) printHint(w io.Writer, msg string) {
	if c.useColor(w) {
		msg = ui.DimStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
