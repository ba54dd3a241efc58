package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/mithrel/foliate/pkg/api"
)

// CheckConfigValidity verifies the merged configuration before wiring
// the app. Collected problems are reported together.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	add := func(field string, err error) {
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s %v", field, err))
		}
	}

	add("data_dir", validation.Validate(v.GetString("data_dir"), validation.Required))
	add("autosave.debounce_ms", validation.Validate(v.GetInt("autosave.debounce_ms"), validation.Required, validation.Min(1)))
	add("editor.default_font_size", validation.Validate(v.GetInt("editor.default_font_size"),
		validation.Min(api.MinFontSize), validation.Max(api.MaxFontSize)))
	add("editor.default_line_height", validation.Validate(v.GetFloat64("editor.default_line_height"),
		validation.Min(api.MinLineHeight), validation.Max(api.MaxLineHeight)))
	add("editor.default_font_family", validation.Validate(v.GetString("editor.default_font_family"),
		validation.In("system", "serif", "mono")))
	add("editor.default_theme", validation.Validate(v.GetString("editor.default_theme"),
		validation.In("light", "dark")))
	add("render.width", validation.Validate(v.GetInt("render.width"), validation.Required, validation.Min(20)))
	add("log.level", validation.Validate(v.GetString("log.level"),
		validation.In("debug", "info", "warn", "error")))

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
