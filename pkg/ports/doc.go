/*
Package ports defines the driven ports (interfaces) for the tour engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various persistence backends, DOM
providers, and catalog sources.

# Key Interfaces

  - KeyValueStore: Persists the tour's small string key-value state
    (the browser localStorage analog).
  - Document / Element: The DOM query capability the resolver, positioner,
    and interaction gate operate against.
  - CatalogLoader: Supplies the ordered step catalog.
*/
package ports
