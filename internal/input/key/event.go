package key

import (
	"time"
	"unicode"
)

// Event represents a single key press or release.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held.
	Modifiers Modifier

	// Composing is true while an input method composition is in progress.
	Composing bool

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{
		Key:       k,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune) Event {
	return NewEvent(KeyRune, r, ModNone)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return NewEvent(k, 0, mods)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Is returns true if the event is the given special key.
func (e Event) Is(k Key) bool {
	return e.Key == k
}

// IsRuneKey returns true if the event types the given character.
func (e Event) IsRuneKey(r rune) bool {
	return e.IsRune() && e.Rune == r
}

// Name returns the key name as a browser would report it: the character
// for rune keys, the key name otherwise.
func (e Event) Name() string {
	if e.IsRune() {
		return string(e.Rune)
	}
	return e.Key.String()
}

// WithComposing returns a copy of the event with the composition flag set.
func (e Event) WithComposing(composing bool) Event {
	e.Composing = composing
	return e
}
