package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfirm() Confirm {
	return NewConfirm("Type the database name:", "sparkifydb",
		key.NewBinding(key.WithKeys("enter")),
		key.NewBinding(key.WithKeys("esc", "ctrl+c")),
	)
}

func typeText(t *testing.T, c Confirm, text string) Confirm {
	t.Helper()
	model, _ := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	next, ok := model.(Confirm)
	require.True(t, ok)
	return next
}

func press(t *testing.T, c Confirm, k tea.KeyType) (Confirm, tea.Cmd) {
	t.Helper()
	model, cmd := c.Update(tea.KeyMsg{Type: k})
	next, ok := model.(Confirm)
	require.True(t, ok)
	return next, cmd
}

func TestConfirm_ExactValueConfirms(t *testing.T) {
	c := typeText(t, newTestConfirm(), "sparkifydb")
	assert.Equal(t, "sparkifydb", c.Value())

	c, cmd := press(t, c, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, c.Confirmed())
	assert.False(t, c.Cancelled())
	assert.Empty(t, c.View())
}

func TestConfirm_MismatchIsNotConfirmed(t *testing.T) {
	c := typeText(t, newTestConfirm(), "sparkify")
	c, _ = press(t, c, tea.KeyEnter)
	assert.False(t, c.Confirmed())
	assert.False(t, c.Cancelled())
}

func TestConfirm_Cancel(t *testing.T) {
	c := typeText(t, newTestConfirm(), "sparkifydb")
	c, cmd := press(t, c, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.True(t, c.Cancelled())
	assert.False(t, c.Confirmed())
}

func TestConfirm_NotDoneBeforeSubmit(t *testing.T) {
	c := typeText(t, newTestConfirm(), "sparkifydb")
	assert.False(t, c.Confirmed())
}

func TestConfirm_View(t *testing.T) {
	c := newTestConfirm().WithHelp("enter confirm")
	view := c.View()
	assert.Contains(t, view, "Type the database name:")
	assert.Contains(t, view, "enter confirm")

	c = typeText(t, c, "other")
	assert.Contains(t, c.View(), "does not match sparkifydb")

	c = typeText(t, newTestConfirm(), "spark")
	assert.NotContains(t, c.View(), "does not match")
}
