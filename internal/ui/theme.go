package ui

import "github.com/charmbracelet/lipgloss"

// Theme represents the user interface color theme
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DetectTheme returns the detected terminal theme (Dark or Light)
func DetectTheme() Theme {
	if lipgloss.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme sets the active palette from a config value: "dark", "light",
// or "auto" (terminal background detection, also the fallback for an
// unrecognized value).
func ApplyTheme(name string) {
	theme := Theme(name)
	switch theme {
	case ThemeDark:
		SetDarkTheme()
	case ThemeLight:
		SetLightTheme()
	default:
		if DetectTheme() == ThemeDark {
			SetDarkTheme()
		} else {
			SetLightTheme()
		}
	}
}
