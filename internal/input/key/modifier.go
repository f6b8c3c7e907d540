package key

import "strings"

// Modifier is the set of modifier keys held during an event.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	// ModAlt is Option on macOS.
	ModAlt
	// ModMeta is Cmd on macOS.
	ModMeta
)

// modifierKeys pairs each flag with the key that sets it, in display
// order.
var modifierKeys = []struct {
	mod  Modifier
	key  Key
	name string
}{
	{ModCtrl, KeyCtrl, "Ctrl"},
	{ModAlt, KeyAlt, "Alt"},
	{ModShift, KeyShift, "Shift"},
	{ModMeta, KeyMeta, "Meta"},
}

// Has reports whether every flag of mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }

// With adds mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String joins the held modifiers, e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	for _, mk := range modifierKeys {
		if m.Has(mk.mod) {
			parts = append(parts, mk.name)
		}
	}
	return strings.Join(parts, "+")
}

// Modifier returns the flag a terminal reports while k is held, or
// ModNone when k is not a modifier key.
func (k Key) Modifier() Modifier {
	for _, mk := range modifierKeys {
		if mk.key == k {
			return mk.mod
		}
	}
	return ModNone
}
