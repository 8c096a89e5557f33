// Package pagination owns the write cursor of a document being laid out and
// decides when content must move to a new page.
package pagination

import (
	"log"

	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/style"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// PageSizeByName looks up a standard size, case-sensitively.
func PageSizeByName(name string) (PageSize, bool) {
	for _, s := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		if s.Name == name {
			return s, true
		}
	}
	return PageSize{}, false
}

// Margins represents page margins. Bottom includes the band reserved for
// the running footer.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins leave 18mm at the sides and top and keep body content
// clear of the footer strip.
var DefaultMargins = Margins{Top: 51, Right: 51, Bottom: 54, Left: 51}

// Pager holds the cursor (current page, y offset) for one generation pass.
// It is not safe for concurrent use; one pass owns one pager.
type Pager struct {
	canvas     render.Canvas
	size       PageSize
	margins    Margins
	background style.Color

	y      float64
	breaks int

	Debug  bool
	Logger *log.Logger
}

// NewPager creates a pager over canvas. No page exists until Start.
func NewPager(canvas render.Canvas, size PageSize, margins Margins, background style.Color) *Pager {
	return &Pager{
		canvas:     canvas,
		size:       size,
		margins:    margins,
		background: background,
	}
}

// Start opens the first page and places the cursor at the top margin.
func (p *Pager) Start() {
	p.newPage()
}

// EnsureSpace guarantees that a block of height h starting at the cursor
// fits above the content bottom, opening a new page when it does not. It
// reports whether a page break happened. A block taller than a whole page
// is left to overflow rather than breaking again on an empty page.
func (p *Pager) EnsureSpace(h float64) bool {
	if p.y+h <= p.ContentBottom() {
		return false
	}
	if p.AtTop() {
		if p.Debug && p.Logger != nil {
			p.Logger.Printf("[Pager] block of %.1fpt overflows page %d", h, p.Page())
		}
		return false
	}
	p.newPage()
	p.breaks++
	return true
}

// NewPage forces a page break.
func (p *Pager) NewPage() {
	p.newPage()
	p.breaks++
}

func (p *Pager) newPage() {
	p.canvas.AddPage()
	p.canvas.FillRect(0, 0, p.size.Width, p.size.Height, p.background)
	p.y = p.margins.Top
	if p.Debug && p.Logger != nil {
		p.Logger.Printf("[Pager] page %d started", p.canvas.PageCount())
	}
}

// Y returns the cursor's vertical offset on the current page.
func (p *Pager) Y() float64 { return p.y }

// SetY moves the cursor on the current page.
func (p *Pager) SetY(y float64) { p.y = y }

// Advance moves the cursor down by dy.
func (p *Pager) Advance(dy float64) { p.y += dy }

// Page returns the current page number, 1-indexed.
func (p *Pager) Page() int { return p.canvas.PageCount() }

// Breaks returns the number of page breaks taken so far.
func (p *Pager) Breaks() int { return p.breaks }

// AtTop reports whether nothing has been placed below the top margin.
func (p *Pager) AtTop() bool { return p.y <= p.margins.Top }

func (p *Pager) Size() PageSize        { return p.size }
func (p *Pager) Margins() Margins      { return p.margins }
func (p *Pager) Left() float64         { return p.margins.Left }
func (p *Pager) Right() float64        { return p.size.Width - p.margins.Right }
func (p *Pager) ContentWidth() float64 { return p.Right() - p.Left() }
func (p *Pager) ContentTop() float64   { return p.margins.Top }

// ContentBottom is the lowest y body content may reach.
func (p *Pager) ContentBottom() float64 { return p.size.Height - p.margins.Bottom }

// UsableHeight is the body height of one page.
func (p *Pager) UsableHeight() float64 { return p.ContentBottom() - p.ContentTop() }
