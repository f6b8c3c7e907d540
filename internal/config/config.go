package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// SoftBreakKeys are the accepted editor.soft_break_key names, lower
	// case.
	SoftBreakKeys = []string{"shift", "ctrl", "control", "alt", "option", "meta", "cmd", "command"}

	// FocusPlacements are the accepted editor.focus_after_split values.
	FocusPlacements = []string{"start", "end"}

	// LogLevels are the accepted log.level names, lower case.
	LogLevels = []string{"debug", "info", "warn", "warning", "error"}
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Menu    MenuConfig    `mapstructure:"menu" yaml:"menu"`
	Mouse   MouseConfig   `mapstructure:"mouse" yaml:"mouse"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Script  ScriptConfig  `mapstructure:"script" yaml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			CommandKey:      "/",
			SoftBreakKey:    "Shift",
			EmptyMarkers:    []string{"", "<br>"},
			FocusAfterSplit: "start",
			DefaultTag:      "p",
		},
		Menu: MenuConfig{
			ListenerDelay: 100 * time.Millisecond,
			Tags:          []string{"p", "h1", "h2", "h3", "quote", "code"},
		},
		Mouse: MouseConfig{
			ClickInterval: 400 * time.Millisecond,
			DragThreshold: 1,
		},
		Theme: ThemeConfig{
			Foreground:     "#d8dee9",
			Background:     "#2e3440",
			Emphasis:       "#ebcb8b",
			Heading:        "#88c0d0",
			Handle:         "#4c566a",
			MenuForeground: "#eceff4",
			MenuBackground: "#434c5e",
		},
		Log: LogConfig{
			Level: "info",
		},
		Script: ScriptConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := cfg.merge(raw, true); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from BLOCKSTORM_* entries of environ, in
// os.Environ form.
func (c *Config) ApplyEnv(environ []string) error {
	raw := envSettings(EnvPrefix, environ)
	if len(raw) == 0 {
		return nil
	}
	if err := c.merge(raw, false); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// merge decodes raw settings onto c. Keys absent from raw keep their value;
// lists are replaced, not merged. Strict decoding rejects unknown keys.
func (c *Config) merge(raw map[string]any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      strict,
		Result:           c,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if utf8.RuneCountInString(c.Editor.CommandKey) != 1 {
		errs = append(errs, invalid("editor.command_key", "%q must be a single character", c.Editor.CommandKey))
	}
	if !oneOf(SoftBreakKeys, c.Editor.SoftBreakKey) {
		errs = append(errs, invalid("editor.soft_break_key", "%q is not a modifier key", c.Editor.SoftBreakKey))
	}
	if !slices.Contains(FocusPlacements, c.Editor.FocusAfterSplit) {
		errs = append(errs, invalid("editor.focus_after_split", "%q must be start or end", c.Editor.FocusAfterSplit))
	}
	if c.Editor.DefaultTag == "" {
		errs = append(errs, invalid("editor.default_tag", "must not be empty"))
	}
	if c.Menu.ListenerDelay < 0 {
		errs = append(errs, invalid("menu.listener_delay", "%s is negative", c.Menu.ListenerDelay))
	}
	if len(c.Menu.Tags) == 0 {
		errs = append(errs, invalid("menu.tags", "must list at least one tag"))
	}
	for i, t := range c.Menu.Tags {
		if t == "" {
			errs = append(errs, invalid(fmt.Sprintf("menu.tags[%d]", i), "must not be empty"))
		}
	}
	if c.Mouse.ClickInterval < 0 {
		errs = append(errs, invalid("mouse.click_interval", "%s is negative", c.Mouse.ClickInterval))
	}
	if c.Mouse.DragThreshold < 1 {
		errs = append(errs, invalid("mouse.drag_threshold", "%d must be at least 1", c.Mouse.DragThreshold))
	}
	if _, err := c.Theme.Palette(); err != nil {
		errs = append(errs, err)
	}
	if !oneOf(LogLevels, c.Log.Level) {
		errs = append(errs, invalid("log.level", "unknown level %q", c.Log.Level))
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, invalid("script.timeout", "%s is negative", c.Script.Timeout))
	}
	return errors.Join(errs...)
}

// oneOf reports whether name, trimmed and lower-cased, is in names.
func oneOf(names []string, name string) bool {
	return slices.Contains(names, strings.ToLower(strings.TrimSpace(name)))
}
