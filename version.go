package tour

// Version is the library version, kept in sync with release tags.
var Version = "0.3.0"
