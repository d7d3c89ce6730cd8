/*
Package tour is an interactive product-tour engine for the ShiftSync
scheduling app: a guided sequence of steps anchored to live UI elements,
with persistence, required-action gating, and deterministic overlay
placement.

It separates the tour's state machine (Logic) from the page it annotates
(Document) and the storage it survives in (KeyValueStore). This Hexagonal
Architecture lets the same engine drive a real browser, a test DOM, or a
headless terminal walkthrough.

# Key Features

  - Data-driven steps: the catalog is plain YAML; per-step quirks live in
    configuration tables, not code paths.
  - Resilient targeting: each step carries a fallback chain (selector,
    text, icon shape) evaluated against the live page per device class.
  - Required actions: a step can gate advancement on the user actually
    performing a task, completed via click or route-change signals.
  - Deterministic placement: overlay geometry is pure arithmetic over the
    target rectangle and viewport, so it is unit-testable to the pixel.

# Usage

Construct an Engine, give it a document and a store, and drive it from
your UI event handlers.

	package main

	import (
		"context"
		"log"

		tour "github.com/josephwaugh312/shiftsync-tour"
		"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/file"
	)

	func main() {
		ctx := context.Background()

		eng, err := tour.New(ctx, tour.WithStore(file.New("")))
		if err != nil {
			log.Fatal(err)
		}
		defer eng.Close(ctx)

		eng.Start(ctx)

		// Main loop: View -> present -> advance
		for {
			view, err := eng.View(ctx)
			if err != nil {
				log.Fatal(err)
			}
			if view == nil {
				log.Println("Tour finished.")
				break
			}

			log.Printf("[%d%%] %s: %s", view.Progress, view.Step.Title, view.Step.Content)

			// In a real app, advancement comes from user clicks and
			// navigation signals.
			if !eng.Next(ctx) {
				eng.CompleteRequiredAction(ctx)
				eng.Next(ctx)
			}
		}
	}
*/
package tour
