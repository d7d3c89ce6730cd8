package tour

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Runner drives the engine as a terminal walkthrough using provided IO.
// This allows for easy testing and integration with different frontends
// (plain CLI, TUI, scripted demos).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms step content before outputting it. This allows
// for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run
// (use os.Stdin / os.Stdout for a real terminal).
func NewRunner() *Runner {
	return &Runner{}
}

// Run walks the tour until it ends or the user quits. Commands:
// enter/next advances, prev goes back, skip ends early, "go <route>" and
// "click <href>" feed navigation signals, quit exits the runner.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	// First visit starts fresh; a returning user resumes at the step after
	// their last completed one. An already-active engine keeps its step.
	if !engine.State().Active {
		engine.Toggle(ctx)
	}

	if !r.Headless {
		fmt.Fprintln(writer, "--- ShiftSync Tour ---")
	}

	lastShownID := ""
	for {
		view, err := engine.View(ctx)
		if err != nil {
			return fmt.Errorf("view error: %w", err)
		}
		if view == nil {
			fmt.Fprintln(writer, "Tour complete.")
			return nil
		}

		if view.Step.ID != lastShownID {
			r.printStep(writer, view)
			lastShownID = view.Step.ID
		}

		if r.Headless {
			// Scripted mode: complete gates automatically and advance.
			if !engine.Next(ctx) {
				engine.CompleteRequiredAction(ctx)
				engine.Next(ctx)
			}
			continue
		}

		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(text), " ")
		switch cmd {
		case "", "next", "n":
			if !engine.Next(ctx) {
				fmt.Fprintln(writer, "This step needs an action first (try: go "+view.Step.Route+")")
			}
		case "prev", "p", "back":
			engine.Prev(ctx)
		case "skip":
			engine.Skip(ctx)
		case "go":
			engine.HandleRouteChange(ctx, arg)
			fmt.Fprintln(writer, "navigated to "+arg)
		case "click":
			engine.HandleClick(ctx, arg)
		case "quit", "exit", "q":
			engine.Skip(ctx)
			fmt.Fprintln(writer, "Bye!")
			return nil
		default:
			fmt.Fprintln(writer, "commands: next, prev, skip, go <route>, click <href>, quit")
		}
	}
}

func (r *Runner) printStep(writer io.Writer, view *StepView) {
	header := fmt.Sprintf("[%d%%] %s", view.Progress, view.Step.Title)
	fmt.Fprintln(writer, header)

	content := view.Step.Content
	if r.Renderer != nil {
		if rendered, err := r.Renderer(content); err == nil {
			content = rendered
		}
	}
	if content != "" {
		fmt.Fprintln(writer, strings.TrimSpace(content))
	}
	if view.Step.RequireAction {
		fmt.Fprintf(writer, "(action required: navigate to %s)\n", view.Step.Route)
	}
}
