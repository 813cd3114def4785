// Package render formats a result tree for terminal display.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dahlj/integrity-report/pkg/result"
	"github.com/dahlj/integrity-report/pkg/verdict"
)

// Theme defines the styles used for terminal rendering.
type Theme struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultTheme returns the standard color theme.
func DefaultTheme() Theme {
	return Theme{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// MonoTheme returns an uncolored theme for non-TTY output.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Header:  plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
		Muted:   plain,
		Bold:    plain,
	}
}

// Renderer writes result trees as aligned text tables.
type Renderer struct {
	theme Theme
	w     io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer, theme Theme) *Renderer {
	return &Renderer{theme: theme, w: w}
}

// Tree renders every leaf, the aggregate totals line and the verdict.
func (r *Renderer) Tree(tree *result.Tree, v verdict.Verdict) {
	fmt.Fprintln(r.w, r.theme.Header.Render("Integrity test results: "+tree.Root))

	nameWidth := len("TOTAL")
	for _, leaf := range tree.Children() {
		if len(leaf.FileName) > nameWidth {
			nameWidth = len(leaf.FileName)
		}
	}

	fmt.Fprintf(r.w, "  %s  %7s %7s %9s %9s  %s\n",
		pad("FILE", nameWidth), "PASS", "FAIL", "TEST-EXC", "CALL-EXC", "RUN")
	for _, leaf := range tree.Children() {
		c := leaf.Counts
		status := r.theme.Success
		if c.Problems() > 0 {
			status = r.theme.Error
		}
		fmt.Fprintf(r.w, "  %s  %s %s %9d %9d  %s\n",
			pad(leaf.FileName, nameWidth),
			r.theme.Success.Render(fmt.Sprintf("%7d", c.Success)),
			status.Render(fmt.Sprintf("%7d", c.Failure)),
			c.TestException,
			c.CallException,
			r.theme.Muted.Render(c.RunName))
	}

	agg := tree.Aggregate()
	fmt.Fprintf(r.w, "  %s  %7d %7d %9d %9d\n",
		r.theme.Bold.Render(pad("TOTAL", nameWidth)),
		agg.Success, agg.Failure, agg.TestException, agg.CallException)

	fmt.Fprintln(r.w, r.verdictLine(v))
}

func (r *Renderer) verdictLine(v verdict.Verdict) string {
	label := cases.Title(language.English).String(v.String())
	switch v {
	case verdict.Success:
		return r.theme.Success.Render("Build verdict: " + label)
	case verdict.Unstable:
		return r.theme.Warning.Render("Build verdict: " + label)
	default:
		return r.theme.Error.Render("Build verdict: " + label)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
