package config

import "strings"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BLOCKSTORM_"

// envSettings collects prefixed variables as nested settings.
// BLOCKSTORM_EDITOR_COMMAND_KEY=# becomes editor.command_key = "#".
// Empty values are valid values, not unset.
func envSettings(prefix string, environ []string) map[string]any {
	settings := make(map[string]any)
	for _, env := range environ {
		name, value, found := strings.Cut(env, "=")
		if !found || !strings.HasPrefix(name, prefix) {
			continue
		}
		section, setting, ok := envToPath(strings.TrimPrefix(name, prefix))
		if !ok {
			continue
		}
		m, _ := settings[section].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			settings[section] = m
		}
		m[setting] = value
	}
	return settings
}

// envToPath converts EDITOR_COMMAND_KEY to ("editor", "command_key").
func envToPath(name string) (section, setting string, ok bool) {
	section, setting, ok = strings.Cut(strings.ToLower(name), "_")
	if !ok || section == "" || setting == "" {
		return "", "", false
	}
	return section, setting, true
}
