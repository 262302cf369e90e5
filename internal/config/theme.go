package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Theme names a UI color scheme. "auto" defers to the viewer's OS setting.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ParseTheme normalizes and validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeAuto:
		return ThemeAuto, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// String returns the theme name.
func (t Theme) String() string { return string(t) }

// StringToTheme is a DecodeHookFunc that converts a string to a Theme.
func StringToTheme() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Theme("")) {
			return data, nil
		}
		return ParseTheme(data.(string))
	}
}
