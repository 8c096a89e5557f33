// Package style maps semantic roles to concrete colors and fonts. Colors are
// resolved once, centrally, and passed explicitly to every drawing call.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/careerpath/roadmappdf/internal/metrics"
)

// Role is a semantic color role.
type Role int

const (
	Success Role = iota
	Info
	Warning
	Danger
	Accent
	Background
	Surface
	Header
	Text
	Body
	Muted
	Track
	Highlight
	numRoles
)

var roleNames = [numRoles]string{
	Success:    "success",
	Info:       "info",
	Warning:    "warning",
	Danger:     "danger",
	Accent:     "accent",
	Background: "background",
	Surface:    "surface",
	Header:     "header",
	Text:       "text",
	Body:       "body",
	Muted:      "muted",
	Track:      "track",
	Highlight:  "highlight",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole resolves a role by its lower-case name.
func ParseRole(name string) (Role, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range roleNames {
		if n == name {
			return Role(i), true
		}
	}
	return 0, false
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns the components as ints, the form the PDF backend expects.
func (c Color) RGB() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Tint blends c over bg with the given opacity and returns an opaque color.
// Translucent fills are flattened this way so the output never depends on
// PDF transparency groups.
func Tint(c, bg Color, alpha float64) Color {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 1 {
		return c
	}
	mix := func(fg, b uint8) uint8 {
		v := float64(fg)*alpha + float64(b)*(1-alpha)
		return uint8(v + 0.5)
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B)}
}

// ParseHex parses #RRGGBB or #RGB.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette maps every role to a concrete color.
type Palette [numRoles]Color

// DefaultPalette is the dark roadmap theme.
func DefaultPalette() Palette {
	var p Palette
	p[Success] = Color{16, 185, 129}
	p[Info] = Color{6, 182, 212}
	p[Warning] = Color{245, 158, 11}
	p[Danger] = Color{236, 72, 153}
	p[Accent] = Color{124, 58, 237}
	p[Background] = Color{8, 8, 20}
	p[Surface] = Color{18, 20, 40}
	p[Header] = Color{30, 15, 60}
	p[Text] = Color{255, 255, 255}
	p[Body] = Color{148, 163, 184}
	p[Muted] = Color{100, 116, 139}
	p[Track] = Color{30, 41, 59}
	p[Highlight] = Color{6, 30, 60}
	return p
}

// Color returns the color for role.
func (p *Palette) Color(r Role) Color {
	if r < 0 || r >= numRoles {
		return p[Text]
	}
	return p[r]
}

// Tinted returns role's color flattened over the page background.
func (p *Palette) Tinted(r Role, alpha float64) Color {
	return Tint(p.Color(r), p[Background], alpha)
}

// Override replaces role colors from a name -> hex map. Unknown names and
// malformed values are reported together.
func (p *Palette) Override(hex map[string]string) error {
	var bad []string
	for name, v := range hex {
		r, ok := ParseRole(name)
		if !ok {
			bad = append(bad, "unknown role "+name)
			continue
		}
		c, err := ParseHex(v)
		if err != nil {
			bad = append(bad, err.Error())
			continue
		}
		p[r] = c
	}
	if len(bad) > 0 {
		return fmt.Errorf("palette: %s", strings.Join(bad, "; "))
	}
	return nil
}

// TierRole picks the bar color for a readiness band.
func TierRole(t metrics.Tier) Role {
	switch t {
	case metrics.TierHigh:
		return Success
	case metrics.TierMedium:
		return Info
	case metrics.TierLow:
		return Warning
	default:
		return Accent
	}
}

// Weight is a font weight.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Font is a font request: size in points and weight. The family is fixed by
// the canvas.
type Font struct {
	Size   float64
	Weight Weight
}

// Align is horizontal text alignment relative to the anchor x.
type Align int

const (
	Start Align = iota
	Center
	End
)
