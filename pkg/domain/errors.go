package domain

import "errors"

// ErrKeyNotFound is returned when a persistence key is absent from the store.
var ErrKeyNotFound = errors.New("key not found")

// ErrEmptyCatalog is returned when a tour is constructed without steps.
var ErrEmptyCatalog = errors.New("catalog is empty")

// ErrNoEngine is returned when tour state or operations are read outside a
// provided engine scope. This is a programming error, not a runtime
// condition to recover from.
var ErrNoEngine = errors.New("no tour engine in scope")
