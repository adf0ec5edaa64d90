package lib

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleReporter prints one line per verdict. Styling follows the
// capabilities of the writer, so redirected output stays plain.
type ConsoleReporter struct {
	out      io.Writer
	accepted lipgloss.Style
	failed   lipgloss.Style
	source   lipgloss.Style
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:      out,
		accepted: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		failed:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		source:   r.NewStyle().Faint(true),
	}
}

func (c *ConsoleReporter) Accepted(_ context.Context, source string, prog Program) error {
	_, err := fmt.Fprintf(c.out, "%s %s program %s (%d declarations)\n",
		c.source.Render(source+":"),
		c.accepted.Render("ACCEPTED"),
		prog.Name,
		len(prog.Declarations))
	return err
}

func (c *ConsoleReporter) Failed(_ context.Context, source string, failure Failure) error {
	_, err := fmt.Fprintf(c.out, "%s %s %s\n",
		c.source.Render(fmt.Sprintf("%s:%s:", source, failure.Location)),
		c.failed.Render(className(failure.Class)),
		failure.Message)
	return err
}

func className(o Outcome) string {
	switch o {
	case OutcomeLexicalError:
		return "LexicalError"
	case OutcomeSyntaxError:
		return "SyntaxError"
	default:
		return o.String()
	}
}
