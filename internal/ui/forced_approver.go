package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) sparkify.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, dangerBanner(dbName))
	fmt.Fprintln(a.output)

	countdownSeconds := int(sparkify.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rDropping in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r%s Proceeding with database overwrite...                              \n", tui.SymbolCheck)
	return true, nil
}

// dangerBanner renders the boxed warning shown before a forced drop.
func dangerBanner(dbName string) string {
	text := fmt.Sprintf("%s DANGER: database '%s' will be DROPPED and RECREATED.\nAll songs, artists, users, time and songplays rows will be lost.",
		tui.SymbolWarning, dbName)
	return tui.DangerBoxStyle.Render(text)
}

var _ sparkify.Approver = (*ForcedApprover)(nil)
