package app

import (
	"unicode/utf8"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/input/mouse"
)

// dispatcherConfig converts the editor and menu sections of a validated
// configuration.
func dispatcherConfig(cfg *config.Config) dispatcher.Config {
	dc := dispatcher.DefaultConfig().
		WithSoftBreakKey(key.KeyFromName(cfg.Editor.SoftBreakKey)).
		WithEmptyMarkers(cfg.Editor.EmptyMarkers...).
		WithFocusAfterSplit(dispatcher.Placement(cfg.Editor.FocusAfterSplit)).
		WithListenerDelay(cfg.Menu.ListenerDelay)
	if r, size := utf8.DecodeRuneInString(cfg.Editor.CommandKey); size > 0 {
		dc = dc.WithCommandKey(r)
	}
	return dc
}

func mouseConfig(cfg *config.Config) mouse.Config {
	mc := mouse.DefaultConfig()
	mc.ClickInterval = cfg.Mouse.ClickInterval
	mc.DragThreshold = cfg.Mouse.DragThreshold
	return mc
}

// menuTags returns the type-select menu entries in order.
func menuTags(cfg *config.Config) []block.Tag {
	tags := make([]block.Tag, len(cfg.Menu.Tags))
	for i, t := range cfg.Menu.Tags {
		tags[i] = block.Tag(t)
	}
	return tags
}
