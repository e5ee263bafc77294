package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter prints diagnostics, colored when writing to a terminal.
type Formatter struct {
	w        io.Writer
	color    bool
	errStyle lipgloss.Style
	wrnStyle lipgloss.Style
	locStyle lipgloss.Style
}

func NewFormatter(w io.Writer, color bool) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:        w,
		color:    color,
		errStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171")),
		wrnStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FBBF24")),
		locStyle: r.NewStyle().Faint(true),
	}
}

// NewStderrFormatter colors output only if stderr is a terminal.
func NewStderrFormatter() *Formatter {
	return NewFormatter(os.Stderr, IsTerminal(os.Stderr))
}

func (f *Formatter) Print(d *DiagnosticError) {
	if !f.color {
		fmt.Fprintf(f.w, "%s\n\n", d.Error())
		return
	}
	style := f.errStyle
	if d.Severity == SeverityWarning {
		style = f.wrnStyle
	}
	head := style.Render(fmt.Sprintf("[%s]", d.Severity))
	fmt.Fprintf(f.w, "%s %s: %s\n%s\n\n", head, d.Subject(), d.Message, f.locStyle.Render(d.Location()))
}

func (f *Formatter) PrintAll(diags []*DiagnosticError) {
	for _, d := range diags {
		f.Print(d)
	}
}
