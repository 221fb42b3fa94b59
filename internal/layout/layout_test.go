package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mofa-org/devpage/internal/types"
)

func TestHeightFor(t *testing.T) {
	// (i*13+7)%10 for i = 0..9 is 7 0 3 6 9 2 5 8 1 4.
	want := []types.HeightClass{
		types.HeightCompact,
		types.HeightNormal,
		types.HeightNormal,
		types.HeightCompact,
		types.HeightTall,
		types.HeightNormal,
		types.HeightCompact,
		types.HeightTall,
		types.HeightNormal,
		types.HeightNormal,
	}

	for i, expected := range want {
		assert.Equal(t, expected, HeightFor(i), "index %d", i)
	}
	assert.Equal(t, HeightFor(0), HeightFor(10), "pattern repeats every ten cards")
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, types.ColorCoral, ColorFor(0))
	assert.Equal(t, types.ColorMint, ColorFor(1))
	assert.Equal(t, types.ColorLemon, ColorFor(7))
	assert.Equal(t, types.ColorCoral, ColorFor(8))
	assert.Equal(t, types.ColorLemon, ColorFor(-1))
}

func TestAssignFluidLayouts(t *testing.T) {
	links := []types.LinkEntry{
		{Name: "Twitter", URL: "https://x.com/dev1", Icon: "/icons/x.svg"},
		{Name: "Github", URL: "https://github.com/dev1", Icon: "/icons/github.svg"},
	}

	first := AssignFluidLayouts(links)
	second := AssignFluidLayouts(links)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)

	assert.Equal(t, links[0], first[0].LinkEntry)
	assert.Equal(t, types.HeightCompact, first[0].HeightClass)
	assert.Equal(t, types.ColorCoral, first[0].ColorTheme)
	assert.Equal(t, types.HeightNormal, first[1].HeightClass)
	assert.Equal(t, types.ColorMint, first[1].ColorTheme)
}

func TestAssignFluidLayouts_Empty(t *testing.T) {
	assert.Empty(t, AssignFluidLayouts(nil))
}
