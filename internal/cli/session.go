package cli

import (
	"context"
	"os"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/internal/presentation/tui"
)

// RunSession executes one interactive tour session on the terminal.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if !opts.Headless {
		tui.PrintBanner(tour.Version)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := CreateEngine(sigCtx, opts, logger)
	if err != nil {
		return err
	}
	defer engine.Close(context.Background())

	if engine.State().HasSeenTutorial && !opts.Headless {
		printSystemMessage("Welcome back! Resuming where you left off.")
	}

	r := tour.NewRunner()
	r.Input = NewInterruptibleReader(os.Stdin, sigCtx.Done())
	r.Output = os.Stdout
	r.Headless = opts.Headless
	if !opts.Headless {
		r.Renderer = tui.NewRenderer()
	}

	runErr := r.Run(sigCtx, engine)

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	if runErr != nil && isInterrupted(runErr) && !opts.Headless {
		printSystemMessage("Interrupted. Progress is saved; run again to resume.")
	}

	return handleExecutionError(runErr)
}
