package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles colors verdicts. The renderer is bound to the command's stdout, so
// output captured by a pipe or a test buffer stays plain text.
type styles struct {
	pass   lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
	marker lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		pass:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		fail:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		marker: r.NewStyle().Foreground(lipgloss.Color("1")),
		dim:    r.NewStyle().Faint(true),
	}
}

// verdict styles the first line of a rendered report by outcome and marks
// the failing step of the trace.
func (s styles) verdict(report string, passed bool) string {
	head, rest, _ := strings.Cut(report, "\n")

	if passed {
		head = s.pass.Render(head)
	} else {
		head = s.fail.Render(head)
	}

	if rest == "" {
		return head
	}

	return head + "\n" + s.trace(rest)
}

// trace highlights lines that carry the divergence marker.
func (s styles) trace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "→ ") {
			lines[i] = s.marker.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}
