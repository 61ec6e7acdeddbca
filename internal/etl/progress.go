package etl

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// ProgressReporter observes a phase: the number of files found, then each
// file as it completes.
type ProgressReporter interface {
	PhaseStarted(category sparkify.FileCategory, root string, total int)
	FileDone(done, total int, path string)
}

// LogProgress reports through the logger only.
type LogProgress struct {
	logger sparkify.Logger
}

func NewLogProgress(logger sparkify.Logger) *LogProgress {
	return &LogProgress{logger: logger}
}

func (p *LogProgress) PhaseStarted(_ sparkify.FileCategory, root string, total int) {
	p.logger.Info("%d files found in %s", total, root)
}

func (p *LogProgress) FileDone(done, total int, _ string) {
	p.logger.Info("%d/%d files processed.", done, total)
}

// BarProgress redraws a single progress line on a terminal.
type BarProgress struct {
	logger sparkify.Logger
	out    io.Writer
	bar    progress.Model
}

func NewBarProgress(logger sparkify.Logger, out io.Writer) *BarProgress {
	return &BarProgress{
		logger: logger,
		out:    out,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *BarProgress) PhaseStarted(_ sparkify.FileCategory, root string, total int) {
	p.logger.Info("%d files found in %s", total, root)
}

func (p *BarProgress) FileDone(done, total int, _ string) {
	fraction := 1.0
	if total > 0 {
		fraction = float64(done) / float64(total)
	}
	fmt.Fprintf(p.out, "\r%s %d/%d files processed.", p.bar.ViewAs(fraction), done, total)
	if done >= total {
		fmt.Fprintln(p.out)
	}
}

// NewProgressReporter picks the bar on an interactive terminal and plain
// log lines otherwise.
func NewProgressReporter(logger sparkify.Logger, out io.Writer, interactive bool) ProgressReporter {
	if interactive {
		return NewBarProgress(logger, out)
	}
	return NewLogProgress(logger)
}
