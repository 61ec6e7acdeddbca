package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/sparkify/internal/tui/components"
)

// RunConfirm runs a one-field prompt on in/out that returns true only if
// the user types dbName and presses enter.
func RunConfirm(ctx context.Context, dbName string, in io.Reader, out io.Writer) (bool, error) {
	keys := DefaultKeyMap()
	prompt := fmt.Sprintf("To confirm, type the database name '%s':", dbName)
	model := components.NewConfirm(prompt, dbName, keys.Confirm, keys.Cancel).
		WithHelp(keys.HelpText())

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	confirm, ok := final.(components.Confirm)
	if !ok {
		return false, fmt.Errorf("confirmation prompt: unexpected model %T", final)
	}
	return confirm.Confirmed(), nil
}
