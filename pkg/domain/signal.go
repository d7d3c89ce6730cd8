package domain

import "strings"

// KeyEvent is a global key press observed by the host.
// EditableTarget reports whether an input, textarea, or contenteditable
// element currently captures focus; the engine ignores shortcut matches
// while typing.
type KeyEvent struct {
	Key            string `json:"key"`
	Shift          bool   `json:"shift"`
	Ctrl           bool   `json:"ctrl"`
	Alt            bool   `json:"alt"`
	Meta           bool   `json:"meta"`
	EditableTarget bool   `json:"editable_target"`
}

// Shortcut is a modifier+key combination that toggles the tour.
type Shortcut struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Meta  bool   `json:"meta"`
}

// DefaultShortcut is the combination the host app binds by default.
var DefaultShortcut = Shortcut{Key: "t", Shift: true}

// Matches reports whether the key event is this shortcut. The key letter
// compares case-insensitively since Shift changes the reported rune.
func (s Shortcut) Matches(k KeyEvent) bool {
	return strings.EqualFold(s.Key, k.Key) &&
		s.Shift == k.Shift &&
		s.Ctrl == k.Ctrl &&
		s.Alt == k.Alt &&
		s.Meta == k.Meta
}
