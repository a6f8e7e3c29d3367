// Package prompt asks the user questions in the terminal: pick one item
// from a list, type a value, or answer yes/no. Each question runs as its
// own short bubbletea program.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user presses ctrl+c or esc
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for input
type Prompter interface {
	// Select shows options and returns the index of the chosen one
	Select(title string, options []string) (int, error)

	// Input reads a line of text; validate returns a message to show, or nil
	Input(title string, validate func(string) error) (string, error)

	// Confirm asks a yes/no question, defaulting to no
	Confirm(title string) (bool, error)
}

// TeaPrompter implements Prompter with bubbletea programs
type TeaPrompter struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

// NewTeaPrompter creates a prompter bound to the given terminal streams
func NewTeaPrompter(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *TeaPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &TeaPrompter{in: in, out: out, opts: opts}
}

// Select shows a cursor-driven list
func (p *TeaPrompter) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("select %q: no options", title)
	}

	final, err := p.run(newSelectModel(title, options))
	if err != nil {
		return -1, err
	}
	m := final.(selectModel)
	if m.aborted {
		return -1, ErrAborted
	}
	return m.cursor, nil
}

// Input shows a text field that re-prompts until validate accepts
func (p *TeaPrompter) Input(title string, validate func(string) error) (string, error) {
	final, err := p.run(newInputModel(title, validate))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value, nil
}

// Confirm shows a y/N question
func (p *TeaPrompter) Confirm(title string) (bool, error) {
	final, err := p.run(newConfirmModel(title))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.answer, nil
}

func (p *TeaPrompter) run(m tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithInput(p.in), tea.WithOutput(p.out)}, p.opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}
