package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	purple  = lipgloss.Color("#bd93f9")
	cyan    = lipgloss.Color("#8be9fd")
	green   = lipgloss.Color("#50fa7b")
	red     = lipgloss.Color("#ff5555")
	comment = lipgloss.Color("#6272a4")
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(cyan)
	helpStyle     = lipgloss.NewStyle().Foreground(comment)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
	pagerStyle    = lipgloss.NewStyle().Foreground(purple)
)

// pageSize is the number of options visible at once
const pageSize = 10

func question(title string) string {
	return questionStyle.Render("?") + " " + titleStyle.Render(title)
}

// selectModel picks one option from a list

type selectModel struct {
	title   string
	options []string
	cursor  int
	done    bool
	aborted bool
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{title: title, options: options}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.options) - 1
		}
	case "down", "j", "tab":
		m.cursor++
		if m.cursor >= len(m.options) {
			m.cursor = 0
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.options) - 1
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return question(m.title) + " " + answerStyle.Render(m.options[m.cursor]) + "\n"
	}
	if m.aborted {
		return question(m.title) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(question(m.title))
	sb.WriteString("\n")

	start := 0
	if m.cursor >= pageSize {
		start = m.cursor - pageSize + 1
	}
	end := min(start+pageSize, len(m.options))

	for i := start; i < end; i++ {
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("❯ " + m.options[i]))
		} else {
			sb.WriteString("  " + m.options[i])
		}
		sb.WriteString("\n")
	}
	if len(m.options) > pageSize {
		sb.WriteString(pagerStyle.Render(fmt.Sprintf("  (%d/%d)", m.cursor+1, len(m.options))))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("↑/↓: move • enter: select • esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// inputModel reads one line of text

type inputModel struct {
	title    string
	input    textinput.Model
	validate func(string) error
	errMsg   string
	value    string
	done     bool
	aborted  bool
}

func newInputModel(title string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 30
	ti.Width = 40
	ti.Focus()

	return inputModel{title: title, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			value := m.input.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.errMsg = ""
	}
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return question(m.title) + " " + answerStyle.Render(m.value) + "\n"
	}
	if m.aborted {
		return question(m.title) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(question(m.title))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(">> " + m.errMsg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// confirmModel answers a y/N question

type confirmModel struct {
	title   string
	answer  bool
	done    bool
	aborted bool
}

func newConfirmModel(title string) confirmModel {
	return confirmModel{title: title}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "enter":
		m.answer = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "No"
		if m.answer {
			answer = "Yes"
		}
		return question(m.title) + " " + answerStyle.Render(answer) + "\n"
	}
	return question(m.title) + " " + helpStyle.Render("(y/N)") + "\n"
}
