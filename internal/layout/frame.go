// Package layout provides the drawing primitives shared by the section
// renderers: pills, progress bars, section headers and bordered text
// blocks. Every primitive draws at the pager's cursor and advances it.
package layout

import (
	"log"

	"github.com/careerpath/roadmappdf/internal/pagination"
	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/style"
	"github.com/careerpath/roadmappdf/internal/text"
)

// MM is one millimetre in points.
const MM = 72 / 25.4

// Frame bundles what a renderer needs for one generation pass.
type Frame struct {
	Canvas  render.Canvas
	Pager   *pagination.Pager
	Palette *style.Palette

	Debug  bool
	Logger *log.Logger
}

// NewFrame wires a canvas, pager and palette together.
func NewFrame(c render.Canvas, p *pagination.Pager, palette *style.Palette) *Frame {
	return &Frame{Canvas: c, Pager: p, Palette: palette}
}

// Color is shorthand for the palette color of role.
func (f *Frame) Color(r style.Role) style.Color {
	return f.Palette.Color(r)
}

// Tinted is shorthand for role flattened over the page background.
func (f *Frame) Tinted(r style.Role, alpha float64) style.Color {
	return f.Palette.Tinted(r, alpha)
}

// Wrap wraps s to maxWidth using the canvas metrics.
func (f *Frame) Wrap(s string, maxWidth float64, font style.Font) []string {
	return text.Wrap(f.Canvas, s, maxWidth, font)
}

func (f *Frame) debugf(format string, args ...interface{}) {
	if f.Debug && f.Logger != nil {
		f.Logger.Printf(format, args...)
	}
}
