package dispatcher

import (
	"time"

	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/menu"
)

// Placement says where the caret lands in the block created by a split.
type Placement string

const (
	// PlaceStart puts the caret before the first character.
	PlaceStart Placement = "start"
	// PlaceEnd puts the caret after the last character.
	PlaceEnd Placement = "end"
)

// Valid returns true for known placements.
func (p Placement) Valid() bool {
	return p == PlaceStart || p == PlaceEnd
}

// Config holds dispatcher configuration options.
type Config struct {
	// CommandKey opens the type-select menu.
	CommandKey rune

	// SoftBreakKey is the modifier that, pressed right before Enter, keeps
	// Enter from splitting the block.
	SoftBreakKey key.Key

	// EmptyMarkers are the contents that count as an empty line for
	// Backspace.
	EmptyMarkers []string

	// FocusAfterSplit is where the caret lands in the new block.
	FocusAfterSplit Placement

	// ListenerDelay is how long the action menu waits before listening for
	// the dismissing click.
	ListenerDelay time.Duration

	// RecoverFromPanic turns intent panics into error results.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CommandKey:       '/',
		SoftBreakKey:     key.KeyShift,
		EmptyMarkers:     []string{"", "<br>"},
		FocusAfterSplit:  PlaceStart,
		ListenerDelay:    menu.DefaultListenerDelay,
		RecoverFromPanic: true,
	}
}

// WithCommandKey returns a copy of the config with the command key set.
func (c Config) WithCommandKey(r rune) Config {
	c.CommandKey = r
	return c
}

// WithSoftBreakKey returns a copy of the config with the soft-break key set.
func (c Config) WithSoftBreakKey(k key.Key) Config {
	c.SoftBreakKey = k
	return c
}

// WithEmptyMarkers returns a copy of the config with the empty-line markers set.
func (c Config) WithEmptyMarkers(markers ...string) Config {
	c.EmptyMarkers = append([]string(nil), markers...)
	return c
}

// WithFocusAfterSplit returns a copy of the config with the split placement set.
func (c Config) WithFocusAfterSplit(p Placement) Config {
	c.FocusAfterSplit = p
	return c
}

// WithListenerDelay returns a copy of the config with the listener delay set.
func (c Config) WithListenerDelay(d time.Duration) Config {
	c.ListenerDelay = d
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// softBreakModifier maps the soft-break key to the modifier flag a
// terminal reports on the Enter event itself.
func (c Config) softBreakModifier() key.Modifier {
	return c.SoftBreakKey.Modifier()
}

func (c Config) isEmptyLine(content string) bool {
	for _, m := range c.EmptyMarkers {
		if content == m {
			return true
		}
	}
	return false
}
