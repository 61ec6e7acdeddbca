package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// promptFunc asks for dbName on in/out and reports whether it was typed.
type promptFunc func(ctx context.Context, dbName string, in io.Reader, out io.Writer) (bool, error)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the database name
// to confirm destructive operations.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
	prompt  promptFunc
}

// NewInteractiveApprover creates an InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) sparkify.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
		prompt:  tui.RunConfirm,
	}
}

// RequestApproval prompts the user to type the database name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s WARNING: You are about to DROP and RECREATE the database '%s'\n", tui.SymbolWarning, dbName)
	fmt.Fprintln(a.output, "This will permanently delete all data in this database!")
	fmt.Fprintln(a.output)

	prompt := a.prompt
	if prompt == nil {
		prompt = tui.RunConfirm
	}

	approved, err := prompt(ctx, dbName, a.input, a.output)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !approved {
		fmt.Fprintf(a.output, "%s Input does not match database name '%s'. Operation cancelled.\n", tui.SymbolCross, dbName)
		return false, nil
	}

	fmt.Fprintf(a.output, "%s Confirmed. Proceeding with database overwrite...\n", tui.SymbolCheck)
	return true, nil
}

var _ sparkify.Approver = (*InteractiveApprover)(nil)
