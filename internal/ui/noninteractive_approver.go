package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// NonInteractiveApprover refuses every overwrite. It is used when no
// terminal is attached and --force was not given, so that scripted runs
// never block on a prompt nobody can answer.
type NonInteractiveApprover struct {
	output io.Writer
}

func NewNonInteractiveApprover() sparkify.Approver {
	return &NonInteractiveApprover{output: os.Stderr}
}

func (a *NonInteractiveApprover) RequestApproval(_ context.Context, dbName string) (bool, error) {
	fmt.Fprintf(a.output, "%s Database '%s' already exists and no terminal is available to confirm the overwrite.\n", tui.SymbolCross, dbName)
	fmt.Fprintln(a.output, "Re-run with --force to drop it without a prompt.")
	return false, nil
}

var _ sparkify.Approver = (*NonInteractiveApprover)(nil)
