package theme

// Theming for the overlay preview window: a light and a dark palette built
// around the two lipstick shades, and the ttk styles the views refer to.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaletteSnapshot holds resolved colors for one mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = PaletteSnapshot{
		AppBg:     "#fbf7f8",
		Surface:   "#ffffff",
		Border:    "#e2d4d8",
		Primary:   "#aa0034", // Sinful Cherry
		Danger:    "#dc2626",
		Accent:    "#7f024b", // Delicious Plum
		Text:      "#1e1b1c",
		TextMuted: "#6b5f63",
	}
	dark = PaletteSnapshot{
		AppBg:     "#1a1014",
		Surface:   "#2a1a20",
		Border:    "#4a3038",
		Primary:   "#d1335f",
		Danger:    "#ef4444",
		Accent:    "#a0306e",
		Text:      "#f8eef1",
		TextMuted: "#b39aa2",
	}
)

// Style names used with Style(...).
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var darkMode bool

// CurrentPalette returns colors for the current mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark switches mode and reapplies styles.
func SetDark(d bool) bool {
	darkMode = d
	InitStyles()
	return darkMode
}

// ToggleDark flips mode and reapplies styles.
func ToggleDark() bool { return SetDark(!darkMode) }

func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))
	StyleConfigure(StylePrimaryButton,
		Background(p.Primary), Foreground("white"),
		Padding("4p 3p"), Borderwidth(1), Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger), Foreground("white"),
		Padding("4p 3p"), Borderwidth(1), Relief("ridge"),
	)
	StyleConfigure(StyleStateLabel,
		Background(p.Accent), Foreground("white"),
		Padding("4p 2p"), Borderwidth(1), Relief("groove"),
	)
}
