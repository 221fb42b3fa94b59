// Package types provides type definitions for structured data used throughout the developer page system.
package types

// MappingEntry associates a username with the URL of that user's config document.
type MappingEntry struct {
	Username  string `json:"username"`
	ConfigURL string `json:"config_url"`
}

// LinkEntry is one outbound link parsed from a config document.
// Icon is always resolved before an entry is returned by the parser.
type LinkEntry struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IconHint string `json:"icon_hint,omitempty"` // Empty means auto-detect
	Icon     string `json:"icon"`
}

// HeightClass is the visual height of a link card.
type HeightClass string

const (
	HeightCompact HeightClass = "compact"
	HeightNormal  HeightClass = "normal"
	HeightTall    HeightClass = "tall"
)

// ColorTheme is the named color of a link card.
type ColorTheme string

const (
	ColorCoral    ColorTheme = "coral"
	ColorMint     ColorTheme = "mint"
	ColorLavender ColorTheme = "lavender"
	ColorPeach    ColorTheme = "peach"
	ColorSky      ColorTheme = "sky"
	ColorSage     ColorTheme = "sage"
	ColorRose     ColorTheme = "rose"
	ColorLemon    ColorTheme = "lemon"
)

// FluidLink is a LinkEntry decorated with its position-derived layout.
type FluidLink struct {
	LinkEntry
	HeightClass HeightClass `json:"height_class"`
	ColorTheme  ColorTheme  `json:"color_theme"`
}
