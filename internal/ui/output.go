// Package ui renders the run to a terminal. All styling flows through
// an explicit Styles value; there is no global color state.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/webvet/webvet/internal/probe"
	"github.com/webvet/webvet/internal/report"
)

// Styles holds the lipgloss styles the printer uses. PlainStyles gives
// the no-color rendition.
type Styles struct {
	Banner  lipgloss.Style
	Section lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warn    lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4D96FF")),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00D26A")),
		Fail:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF3838")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB800")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Banner:  plain,
		Section: plain,
		Pass:    plain,
		Fail:    plain,
		Warn:    plain,
		Info:    plain,
		Muted:   plain,
	}
}

// Printer writes labelled report lines in execution order.
type Printer struct {
	out    io.Writer
	styles Styles
}

func NewPrinter(out io.Writer, styles Styles) *Printer {
	return &Printer{out: out, styles: styles}
}

func (p *Printer) Banner(version string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.Banner.Render("  webvet "+version))
	fmt.Fprintln(p.out, p.styles.Muted.Render("  black-box web vulnerability probe runner"))
	fmt.Fprintln(p.out)
}

func (p *Printer) Config(target string, timeout time.Duration, probeCount int, parallel bool) {
	fmt.Fprintln(p.out, p.styles.Section.Render("Run configuration"))
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Target "), target)
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Timeout"), timeout)
	fmt.Fprintf(p.out, "  %s %d\n", p.styles.Muted.Render("Probes "), probeCount)
	if parallel {
		fmt.Fprintf(p.out, "  %s session-free probes on independent sessions\n", p.styles.Muted.Render("Mode   "))
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Info.Render("[i]"), msg)
}

func (p *Printer) Finding(f probe.Finding) {
	var label string
	switch f.Verdict {
	case probe.VerdictPass:
		label = p.styles.Pass.Render("[✓]")
	case probe.VerdictFail:
		label = p.styles.Fail.Render("[✗]")
	default:
		label = p.styles.Warn.Render("[!]")
	}

	line := fmt.Sprintf("%s %s %s", label, p.styles.Muted.Render(string(f.Category)), f.Message)
	if f.Detail != "" && f.Detail != f.Message {
		line += " " + p.styles.Muted.Render("("+f.Detail+")")
	}
	fmt.Fprintln(p.out, line)
}

func (p *Printer) Summary(rep *report.Report) {
	elapsed := rep.EndTime.Sub(rep.StartTime)

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.Section.Render("Run complete"))
	fmt.Fprintf(p.out, "  %s %d\n", p.styles.Muted.Render("Findings"), len(rep.Findings()))
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Pass    "), p.styles.Pass.Render(fmt.Sprintf("%d", rep.PassCount())))
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Fail    "), p.styles.Fail.Render(fmt.Sprintf("%d", rep.FailCount())))
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Warn    "), p.styles.Warn.Render(fmt.Sprintf("%d", rep.WarnCount())))
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render("Duration"), elapsed.Round(time.Millisecond))

	if rep.Success() {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.styles.Pass.Render("  No vulnerabilities indicated."))
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.Fail.Render("  Vulnerabilities indicated:"))
	for _, f := range rep.Failures() {
		fmt.Fprintf(p.out, "    %s [%s] %s\n", p.styles.Fail.Render("-"), f.Category, f.Message)
	}
}
