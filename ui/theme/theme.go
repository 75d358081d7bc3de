package theme

// Centralized theming for the vision panel. Provides the light and dark
// palettes, the ttk styles the views use, and the colors handed to the
// rasterizer so the bar chart and overlay backdrop follow the active mode.

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors of the light mode.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorTrack     = "#e2e8f0" // empty part of a bar
	ColorOverlayBg = "#111827" // letterbox around the displayed image
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
	Track     string
	OverlayBg string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
			Track:     "#334155",
			OverlayBg: "#020617",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
		Track:     ColorTrack,
		OverlayBg: ColorOverlayBg,
	}
}

// BarStyle returns the rasterizer colors of the classification chart.
func BarStyle() images.BarStyle {
	p := CurrentPalette()
	return images.BarStyle{
		Background: Hex(p.Surface),
		Track:      Hex(p.Track),
		Accent:     Hex(p.Accent),
		Muted:      Hex(p.TextMuted),
		Text:       Hex(p.Text),
	}
}

// OverlayBackground is the letterbox color behind the displayed image.
func OverlayBackground() color.Color { return Hex(CurrentPalette().OverlayBg) }

// ToastColor returns the background of a toast of the given level.
func ToastColor(level notify.Level) string {
	p := CurrentPalette()
	switch level {
	case notify.LevelError:
		return p.Danger
	case notify.LevelSuccess:
		return p.Accent
	}
	return p.Primary
}

// Hex parses "#rrggbb". Malformed input yields opaque black.
func Hex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAccentLabel   = "accent.TLabel"
	StyleMutedLabel    = "muted.TLabel"
	StyleErrorLabel    = "error.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns new mode value.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleAccentLabel,
		Foreground(p.Primary),
		Background(p.Surface),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleErrorLabel,
		Foreground(p.Danger),
		Background(p.Surface),
		Padding("2p 1p"),
	)
}
