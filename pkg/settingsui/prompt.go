package settingsui

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/settings"
)

// ClearValue is the answer that empties a field
const ClearValue = "-"

// Prompter asks the user for a new value for one control. An empty answer
// keeps the current value; io.EOF ends the session.
type Prompter interface {
	Prompt(c Control) (string, error)
}

// ConsolePrompter reads one answer per line
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter reads answers from in and writes prompts to out
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) Prompt(c Control) (string, error) {
	current := c.Value
	if current == "" {
		current = c.Placeholder
	}
	fmt.Fprintf(p.out, "%s - %s\n[%s] > ", c.Name, c.Description, current)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if stderrors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if stderrors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read user input")
	}
	return strings.TrimSpace(line), nil
}

// Edit walks every control in order and applies each changed answer
// through OnChange. It returns the fields that were changed.
func (t *Tab) Edit(p Prompter) ([]settings.Field, error) {
	var changed []settings.Field
	for _, c := range t.Controls() {
		answer, err := p.Prompt(c)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return changed, err
		}

		switch answer {
		case "":
			continue
		case ClearValue:
			answer = ""
		}
		if answer == c.Value {
			continue
		}

		if err := t.OnChange(c.Field, answer); err != nil {
			return changed, err
		}
		changed = append(changed, c.Field)
	}
	return changed, nil
}
