package style

import (
	"testing"

	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#10b981")
	require.NoError(t, err)
	assert.Equal(t, Color{16, 185, 129}, c)

	c, err = ParseHex("fff")
	require.NoError(t, err)
	assert.Equal(t, Color{255, 255, 255}, c)

	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestColorHexRoundTrip(t *testing.T) {
	c := Color{124, 58, 237}
	got, err := ParseHex(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestTint(t *testing.T) {
	fg := Color{200, 100, 0}
	bg := Color{0, 0, 100}
	assert.Equal(t, bg, Tint(fg, bg, 0))
	assert.Equal(t, fg, Tint(fg, bg, 1))
	assert.Equal(t, Color{100, 50, 50}, Tint(fg, bg, 0.5))
}

func TestPaletteOverride(t *testing.T) {
	p := DefaultPalette()
	err := p.Override(map[string]string{"success": "#000000", "Accent": "#ffffff"})
	require.NoError(t, err)
	assert.Equal(t, Color{}, p.Color(Success))
	assert.Equal(t, Color{255, 255, 255}, p.Color(Accent))

	err = p.Override(map[string]string{"sparkle": "#000000", "info": "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role sparkle")
}

func TestRoleNames(t *testing.T) {
	for r := Success; r < numRoles; r++ {
		got, ok := ParseRole(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	_, ok := ParseRole("nope")
	assert.False(t, ok)
}

func TestTierRole_DistinctBands(t *testing.T) {
	seen := map[Role]bool{}
	for _, tier := range []metrics.Tier{metrics.TierHigh, metrics.TierMedium, metrics.TierLow, metrics.TierMinimal} {
		seen[TierRole(tier)] = true
	}
	assert.Len(t, seen, 4)
}
