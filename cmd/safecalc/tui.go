package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/safecalc/safecalc"
)

// maxHistory is how many past evaluations the scrollback keeps.
const maxHistory = 20

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// entry is one evaluated expression in the scrollback.
type entry struct {
	src   string
	out   string
	fault bool
}

type model struct {
	input    textinput.Model
	history  []entry
	digits   int
	width    int
	quitting bool
}

func newModel(digits int) model {
	ti := textinput.New()
	ti.Placeholder = "2 + 3*4"
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()
	return model{
		input:  ti,
		digits: digits,
		width:  80,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.history = nil
			return m, nil
		case tea.KeyEnter:
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}
			m.push(evaluate(src, m.digits))
			m.input.Reset()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("safecalc") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	for _, e := range m.history {
		var line string
		if e.fault {
			line = e.src + "  " + faultStyle.Render(e.out)
		} else {
			line = e.src + " = " + resultStyle.Render(e.out)
		}
		b.WriteString(wordwrap.String(line, m.width) + "\n")
	}
	help := "functions: " + strings.Join(safecalc.Functions(), " ") +
		" | constants: " + strings.Join(safecalc.Constants(), " ") +
		" | enter evaluates, ctrl+l clears, esc quits"
	b.WriteString("\n" + faintStyle.Render(wordwrap.String(help, m.width)))
	return b.String()
}

// push prepends an entry so that the most recent evaluation draws first.
func (m *model) push(e entry) {
	m.history = append([]entry{e}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

// evaluate runs one expression and formats the outcome for the scrollback.
func evaluate(src string, digits int) entry {
	n, err := safecalc.Evaluate(src)
	if err != nil {
		kind, _ := safecalc.Kind(err)
		return entry{src: src, out: kind.String() + ": " + err.Error(), fault: true}
	}
	return entry{src: src, out: n.Format(digits)}
}
