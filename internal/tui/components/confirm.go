// Package components holds the bubbletea models used by sparkify prompts.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Confirm asks the user to type an exact value, such as a database name,
// before a destructive step. It quits the program on submit or cancel.
type Confirm struct {
	prompt   string
	expected string
	help     string
	input    textinput.Model
	submit   key.Binding
	cancel   key.Binding
	styles   confirmStyles

	done      bool
	cancelled bool
}

type confirmStyles struct {
	Prompt   lipgloss.Style
	Input    lipgloss.Style
	Help     lipgloss.Style
	Mismatch lipgloss.Style
}

func defaultConfirmStyles() confirmStyles {
	return confirmStyles{
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Input:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Mismatch: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NewConfirm creates a focused confirmation field that accepts expected.
func NewConfirm(prompt, expected string, submit, cancel key.Binding) Confirm {
	ti := textinput.New()
	ti.Placeholder = expected
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	return Confirm{
		prompt:   prompt,
		expected: expected,
		input:    ti,
		submit:   submit,
		cancel:   cancel,
		styles:   defaultConfirmStyles(),
	}
}

// WithHelp sets the line shown under the input.
func (c Confirm) WithHelp(help string) Confirm {
	c.help = help
	return c
}

// Init implements tea.Model.
func (c Confirm) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, c.cancel):
			c.done, c.cancelled = true, true
			return c, tea.Quit
		case key.Matches(msg, c.submit):
			c.done = true
			return c, tea.Quit
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View implements tea.Model.
func (c Confirm) View() string {
	if c.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(c.styles.Prompt.Render(c.prompt))
	b.WriteString("\n")
	b.WriteString(c.styles.Input.Render(c.input.View()))
	if v := c.Value(); v != "" && !strings.HasPrefix(c.expected, v) {
		b.WriteString("\n")
		b.WriteString(c.styles.Mismatch.Render("does not match " + c.expected))
	}
	if c.help != "" {
		b.WriteString("\n")
		b.WriteString(c.styles.Help.Render(c.help))
	}
	b.WriteString("\n")
	return b.String()
}

// Value returns the trimmed text typed so far.
func (c Confirm) Value() string {
	return strings.TrimSpace(c.input.Value())
}

// Confirmed is true once the user submitted exactly the expected value.
func (c Confirm) Confirmed() bool {
	return c.done && !c.cancelled && c.Value() == c.expected
}

// Cancelled is true if the user pressed a cancel key.
func (c Confirm) Cancelled() bool {
	return c.cancelled
}

var _ tea.Model = Confirm{}
