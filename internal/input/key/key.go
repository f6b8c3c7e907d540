package key

import (
	"fmt"
	"strings"
)

// Key identifies a key. Character keys are KeyRune with Event.Rune set.
type Key uint16

const (
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Modifier keys reported on their own.
	KeyShift
	KeyCtrl
	KeyAlt
	KeyMeta

	KeyRune
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyShift:     "Shift",
	KeyCtrl:      "Control",
	KeyAlt:       "Alt",
	KeyMeta:      "Meta",
	KeyRune:      "Rune",
}

// String returns the key name a browser reports for k.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsModifier returns true for modifier keys pressed on their own.
func (k Key) IsModifier() bool {
	return k >= KeyShift && k <= KeyMeta
}

// IsNavigation returns true for caret movement keys.
func (k Key) IsNavigation() bool {
	return k >= KeyHome && k <= KeyRight
}

// keyAliases lists the names accepted besides the lower-cased String.
var keyAliases = map[string]Key{
	"esc":     KeyEscape,
	"return":  KeyEnter,
	"bs":      KeyBackspace,
	"del":     KeyDelete,
	"ctrl":    KeyCtrl,
	"option":  KeyAlt,
	"cmd":     KeyMeta,
	"command": KeyMeta,
}

// KeyFromName parses a key name, ignoring case. Unknown names return
// KeyNone.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyAliases[name]; ok {
		return k
	}
	for k, n := range keyNames {
		if k != int(KeyRune) && strings.ToLower(n) == name {
			return Key(k)
		}
	}
	return KeyNone
}
