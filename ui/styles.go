// Package ui provides the terminal and desktop presentation for wg-toggle.
// This file contains the lipgloss styles used to render reports.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/wg-toggle/vpn"
)

// Color palette.
var (
	ColorSuccess = lipgloss.Color("#2EC27E") // Green
	ColorWarning = lipgloss.Color("#E5A50A") // Amber
	ColorError   = lipgloss.Color("#E01B24") // Red
	ColorSubtle  = lipgloss.Color("#6B7280") // Gray
)

// Symbols for report lines.
const (
	SymbolSuccess = "✓"
	SymbolFailed  = "✗"
	SymbolError   = "!"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	FailedStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	DimStyle     = lipgloss.NewStyle().Foreground(ColorSubtle)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// RenderResult renders one result. Without color it is exactly the plain
// report line.
func RenderResult(r vpn.Result, color bool) string {
	if !color {
		return r.String()
	}

	var symbol string
	var style lipgloss.Style
	switch r.Outcome {
	case vpn.OutcomeSuccess:
		symbol, style = SymbolSuccess, SuccessStyle
	case vpn.OutcomeFailed:
		symbol, style = SymbolFailed, FailedStyle
	default:
		symbol, style = SymbolError, ErrorStyle
	}

	line := fmt.Sprintf("%s for %s: %s", r.Direction, BoldStyle.Render(r.Path), style.Render(r.Outcome.String()))
	if r.Detail != "" {
		line += DimStyle.Render(" - " + r.Detail)
	}
	return style.Render(symbol) + " " + line
}

// RenderReport renders a whole report, one newline-terminated line per path.
// Without color the output equals report.String().
func RenderReport(report *vpn.Report, color bool) string {
	if !color {
		return report.String()
	}

	var b strings.Builder
	for _, r := range report.Results {
		b.WriteString(RenderResult(r, true))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary returns "N of M succeeded" for a report.
func Summary(report *vpn.Report) string {
	total := len(report.Results)
	return fmt.Sprintf("%d of %d succeeded", total-report.Failures(), total)
}
