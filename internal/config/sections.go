package config

import "time"

// EditorConfig holds block editing settings.
type EditorConfig struct {
	// CommandKey is the character that opens the type-select menu.
	CommandKey string `mapstructure:"command_key" yaml:"command_key"`

	// SoftBreakKey names the modifier that, pressed before Enter, keeps
	// Enter from splitting the block ("Shift", "Ctrl", "Alt", "Meta").
	SoftBreakKey string `mapstructure:"soft_break_key" yaml:"soft_break_key"`

	// EmptyMarkers are the contents Backspace treats as an empty line.
	EmptyMarkers []string `mapstructure:"empty_markers" yaml:"empty_markers"`

	// FocusAfterSplit is "start" or "end".
	FocusAfterSplit string `mapstructure:"focus_after_split" yaml:"focus_after_split"`

	// DefaultTag is the tag of new blocks.
	DefaultTag string `mapstructure:"default_tag" yaml:"default_tag"`
}

// MenuConfig holds menu settings.
type MenuConfig struct {
	// ListenerDelay is how long the action menu waits before a click can
	// dismiss it.
	ListenerDelay time.Duration `mapstructure:"listener_delay" yaml:"listener_delay"`

	// Tags are the entries of the type-select menu, in order.
	Tags []string `mapstructure:"tags" yaml:"tags"`
}

// MouseConfig holds pointer gesture thresholds.
type MouseConfig struct {
	// ClickInterval is the longest gap between the clicks of a double or
	// triple click.
	ClickInterval time.Duration `mapstructure:"click_interval" yaml:"click_interval"`

	// DragThreshold is how many cells the pointer travels before a press
	// becomes a drag.
	DragThreshold int `mapstructure:"drag_threshold" yaml:"drag_threshold"`
}

// ThemeConfig holds the terminal colours as hex strings.
type ThemeConfig struct {
	Foreground     string `mapstructure:"foreground" yaml:"foreground"`
	Background     string `mapstructure:"background" yaml:"background"`
	Emphasis       string `mapstructure:"emphasis" yaml:"emphasis"`
	Heading        string `mapstructure:"heading" yaml:"heading"`
	Handle         string `mapstructure:"handle" yaml:"handle"`
	MenuForeground string `mapstructure:"menu_foreground" yaml:"menu_foreground"`
	MenuBackground string `mapstructure:"menu_background" yaml:"menu_background"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level"`

	// File receives log lines. Empty means the editor does not log, since
	// the terminal owns stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	// Addr is the listen address of /metrics. Empty disables the endpoint.
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// ScriptConfig holds Lua runtime settings.
type ScriptConfig struct {
	// Timeout bounds one script run. Zero means no limit.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}
