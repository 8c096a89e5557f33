// Package render defines the drawing surface the layout engine paints on.
// Every primitive takes its color and font explicitly; implementations keep
// no drawing state that leaks from one call into the next.
package render

import (
	"io"

	"github.com/careerpath/roadmappdf/internal/style"
)

// Canvas is a multi-page drawing surface. Coordinates are page-local points
// with the origin at the top-left corner. Drawing calls target the current
// page.
type Canvas interface {
	// PageSize returns the page width and height.
	PageSize() (w, h float64)
	// AddPage appends a page and makes it current.
	AddPage()
	// SetPage selects an existing page, 1-indexed.
	SetPage(n int)
	// PageCount returns the number of pages.
	PageCount() int

	FillRect(x, y, w, h float64, c style.Color)
	RoundedRect(x, y, w, h, r float64, c style.Color)
	Circle(cx, cy, r float64, c style.Color)
	StrokeCircle(cx, cy, r, lineWidth float64, c style.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c style.Color)
	Line(x1, y1, x2, y2, lineWidth float64, c style.Color)
	// Text draws s with its baseline at y. For Center and End alignment x is
	// the center or right edge of the run.
	Text(x, y float64, s string, f style.Font, c style.Color, align style.Align)
	// Image draws a previously registered image.
	Image(name string, x, y, w, h float64)
	// RegisterImage makes PNG-encoded data available under name.
	RegisterImage(name string, png []byte) error

	// MeasureText returns the width of s in font f.
	MeasureText(s string, f style.Font) float64

	// Err returns the first error recorded while drawing, if any.
	Err() error
	// Output serializes the document.
	Output(w io.Writer) error
}
