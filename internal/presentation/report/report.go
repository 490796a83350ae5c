// Package report renders verification results for people: a markdown listing
// of faults, styled through glamour on a terminal, and a one-line colored
// status.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Summary is what a report says about a document besides its faults.
type Summary struct {
	Document string
	Nodes    int
	Strict   bool
}

// Markdown lists the faults of r as a markdown table.
func Markdown(s Summary, r editor.Report) string {
	var sb strings.Builder
	title := s.Document
	if title == "" {
		title = "workspace"
	}
	fmt.Fprintf(&sb, "# Verification of %s\n\n", title)

	mode := "references"
	if s.Strict {
		mode = "strict"
	}
	fmt.Fprintf(&sb, "- Nodes: %d\n- Checks: %s\n- Faults: %d\n\n", s.Nodes, mode, len(r.Faults))

	if r.OK() {
		sb.WriteString("No faults found.\n")
		return sb.String()
	}

	sb.WriteString("| Kind | Node | Field | Target | Detail |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, f := range r.Faults {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			f.Kind, cell(f.NodeID), cell(f.Field), cell(f.Target), cell(detail(f)))
	}
	return sb.String()
}

func detail(f domain.Fault) string {
	if f.Detail != "" {
		return f.Detail
	}
	return f.Error()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write prints md to w. Terminals get the glamour rendering; anything else
// gets the markdown source.
func Write(w io.Writer, md string) error {
	if IsTerminal(w) {
		render, err := NewRenderer()
		if err == nil {
			out, err := render(md)
			if err == nil {
				md = out
			}
		}
	}
	_, err := io.WriteString(w, md)
	return err
}

// Status prints a single colored line saying whether r passed.
func Status(w io.Writer, r editor.Report) error {
	out := termenv.NewOutput(w)
	var line termenv.Style
	if r.OK() {
		line = out.String("✔ no faults").Foreground(out.Color("2"))
	} else {
		line = out.String(fmt.Sprintf("✘ %d fault(s)", len(r.Faults))).Foreground(out.Color("1")).Bold()
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
