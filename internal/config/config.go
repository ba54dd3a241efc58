package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/foliate/pkg/api"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "foliate"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "foliate"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: FOLIATE_* (highest among these sources)
	v.SetEnvPrefix("foliate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize dependent values post-merge
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/foliate or ~/.local/share/foliate
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "foliate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "foliate")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "foliate", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/foliate.db"},
		{Key: "autosave.debounce_ms", Default: 300, Comment: "Quiet window in milliseconds before a durable content save"},
		{Key: "editor.default_font_size", Default: 14, Comment: "Font size for uncustomized documents (12-24)"},
		{Key: "editor.default_line_height", Default: 1.6, Comment: "Line height for uncustomized documents (1.2-2.0)"},
		{Key: "editor.default_font_family", Default: "system", Comment: "Font family for uncustomized documents: system|serif|mono"},
		{Key: "editor.default_theme", Default: "light", Comment: "Theme for uncustomized documents: light|dark"},
		{Key: "render.width", Default: 80, Comment: "Word-wrap width for the markdown preview"},
		{Key: "log.level", Default: "info", Comment: "Log level: debug|info|warn|error"},
	}
}

// ResolveDBPath uses data_dir and defaults to return the durable store file path.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "foliate.db")
}

// DefaultSettings builds the settings record handed to uncustomized
// documents from configuration.
func DefaultSettings(v *viper.Viper) api.Settings {
	return api.Settings{
		FontSize:   v.GetInt("editor.default_font_size"),
		LineHeight: v.GetFloat64("editor.default_line_height"),
		FontFamily: api.FontFamily(v.GetString("editor.default_font_family")),
		Theme:      api.Theme(v.GetString("editor.default_theme")),
	}.Clamped()
}
