// Package config loads the blockstorm configuration.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A YAML file (Load)
//  3. BLOCKSTORM_* environment variables (ApplyEnv)
//
// A file only needs the keys it changes:
//
//	editor:
//	  command_key: "#"
//	  focus_after_split: end
//	menu:
//	  listener_delay: 150ms
//	theme:
//	  emphasis: "#ff8800"
//
// Environment variables name a section and a setting:
// BLOCKSTORM_LOG_LEVEL=debug, BLOCKSTORM_EDITOR_EMPTY_MARKERS=",<br>,<p></p>"
// (lists are comma separated).
//
// Validate reports every bad setting, each wrapped in ErrInvalidConfig.
package config
