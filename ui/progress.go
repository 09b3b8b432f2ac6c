// Package ui provides the terminal and desktop presentation for wg-toggle.
// This file contains the interactive progress view shown while toggling.
package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/vpn"
)

type resultMsg vpn.Result

type doneMsg struct {
	report *vpn.Report
	err    error
}

// progressModel lists finished paths above a spinner.
type progressModel struct {
	spinner spinner.Model
	dir     vpn.Direction
	color   bool
	results []vpn.Result
	done    bool
	report  *vpn.Report
	err     error
}

func newProgressModel(dir vpn.Direction, color bool) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	if color {
		s.Style = SuccessStyle
	}
	return progressModel{spinner: s, dir: dir, color: color}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.results = append(m.results, vpn.Result(msg))
		return m, nil
	case doneMsg:
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// View renders nothing once done; the caller prints the final report.
func (m progressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	for _, r := range m.results {
		b.WriteString(RenderResult(r, m.color))
		b.WriteByte('\n')
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" Turning ")
	b.WriteString(m.dir.String())
	b.WriteString("...\n")
	return b.String()
}

// RunWithProgress toggles every path while showing a spinner on out.
// Returns exactly what toggler.Toggle returns.
func RunWithProgress(ctx context.Context, out io.Writer, toggler *vpn.Toggler, dir vpn.Direction, color bool) (*vpn.Report, error) {
	p := tea.NewProgram(newProgressModel(dir, color),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)

	toggler.SetOnResult(func(r vpn.Result) {
		p.Send(resultMsg(r))
	})
	defer toggler.SetOnResult(nil)

	done := make(chan doneMsg, 1)
	go func() {
		report, err := toggler.Toggle(ctx, dir)
		msg := doneMsg{report: report, err: err}
		done <- msg
		p.Send(msg)
	}()

	// Rendering errors do not affect the toggle result.
	if _, err := p.Run(); err != nil {
		common.LogWarn("Progress view failed: %v", err)
	}

	msg := <-done
	return msg.report, msg.err
}
