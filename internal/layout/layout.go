// Package layout assigns the fluid card layout of a profile page.
// Assignments depend only on a link's position, so the same list always
// produces the same page.
package layout

import "github.com/mofa-org/devpage/internal/types"

// Palette is the ordered color rotation applied to link cards.
var Palette = []types.ColorTheme{
	types.ColorCoral,
	types.ColorMint,
	types.ColorLavender,
	types.ColorPeach,
	types.ColorSky,
	types.ColorSage,
	types.ColorRose,
	types.ColorLemon,
}

// HeightFor returns the height class of the card at index i.
func HeightFor(i int) types.HeightClass {
	switch r := spread(i); {
	case r < 5:
		return types.HeightNormal
	case r < 8:
		return types.HeightCompact
	default:
		return types.HeightTall
	}
}

// ColorFor returns the color theme of the card at index i.
func ColorFor(i int) types.ColorTheme {
	return Palette[mod(i, len(Palette))]
}

// AssignFluidLayouts decorates each link with its height class and color theme.
func AssignFluidLayouts(links []types.LinkEntry) []types.FluidLink {
	out := make([]types.FluidLink, len(links))
	for i, link := range links {
		out[i] = types.FluidLink{
			LinkEntry:   link,
			HeightClass: HeightFor(i),
			ColorTheme:  ColorFor(i),
		}
	}
	return out
}

func spread(i int) int {
	return mod(i*13+7, 10)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
