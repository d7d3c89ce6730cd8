/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically
constructing tour catalogs.

It allows developers to define step catalogs using a type-safe, fluent builder
pattern instead of relying on external YAML files. This is particularly useful
for dynamic catalog generation, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/josephwaugh312/shiftsync-tour/pkg/dsl"
	)

	func main() {
		b := dsl.New("onboarding")

		b.Step("welcome").
			Title("Welcome!").
			Content("Let us show you around.").
			Center()

		b.Step("calendar").
			Title("Your Schedule").
			Content("Shifts live here.").
			Anchor("#schedule-calendar").
			Position("bottom").
			Pointer()

		b.Step("employees").
			Title("Your Team").
			Content("Click to manage employees.").
			Anchor("#nav-employees").
			RequireNavigation("/employees").
			ClickThrough()

		// The resulting loader can be passed to tour.New via
		// tour.WithCatalogLoader.
		loader, err := b.Build()
		// ...
		_ = loader
		_ = err
	}
*/
package dsl
