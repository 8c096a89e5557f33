package layout

import (
	"math"
	"strings"

	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/style"
)

// Fonts used by the primitives. Sizes are in points.
var (
	PillFont   = style.Font{Size: 7, Weight: style.Bold}
	HeaderFont = style.Font{Size: 7.5, Weight: style.Bold}
	LabelFont  = style.Font{Size: 6, Weight: style.Bold}
	BodyFont   = style.Font{Size: 7.5, Weight: style.Regular}
)

// Geometry of the primitives.
const (
	PillHeight    = 5 * MM
	PillPadding   = 3 * MM
	PillGap       = 3 * MM
	PillRadius    = 1.5 * MM
	FlowRowHeight = 7 * MM

	HeaderHeight  = 8 * MM
	HeaderAdvance = 11 * MM
	headerBar     = 3 * MM
	headerInset   = 7 * MM

	checkSlot = 3 * MM
)

// PillWidth returns the badge width of s, without the trailing gap.
func PillWidth(f *Frame, s string) float64 {
	return f.Canvas.MeasureText(s, PillFont) + 2*PillPadding
}

// Pill draws a tinted badge whose top edge is at y and returns the
// horizontal space it consumed, gap included.
func Pill(f *Frame, x, y float64, s string, role style.Role) float64 {
	w := PillWidth(f, s)
	f.Canvas.RoundedRect(x, y, w, PillHeight, PillRadius, f.Tinted(role, 0.15))
	f.Canvas.Text(x+PillPadding, y+3.5*MM, s, PillFont, f.Color(role), style.Start)
	return w + PillGap
}

// FlowOptions tunes FlowPills.
type FlowOptions struct {
	Role style.Role
	// Check prefixes every pill with a check mark.
	Check bool
}

// FlowPills lays pills out left to right from the cursor, starting a new
// row whenever the next pill would cross the right margin. Each row is
// placed with its own EnsureSpace so rows never straddle a page. The
// cursor ends below the last row.
func FlowPills(f *Frame, items []string, opts FlowOptions) {
	if len(items) == 0 {
		return
	}
	p := f.Pager
	x := p.Left()
	p.EnsureSpace(FlowRowHeight)
	rowStart := true
	for _, s := range items {
		w := flowPillWidth(f, s, opts)
		if !rowStart && x+w > p.Right() {
			p.Advance(FlowRowHeight)
			p.EnsureSpace(FlowRowHeight)
			x = p.Left()
		}
		drawFlowPill(f, x, p.Y(), s, w, opts)
		x += w + 2*MM
		rowStart = false
	}
	p.Advance(FlowRowHeight)
}

// FlowHeight estimates the height FlowPills will consume for items.
func FlowHeight(f *Frame, items []string, opts FlowOptions) float64 {
	if len(items) == 0 {
		return 0
	}
	p := f.Pager
	rows := 1
	x := p.Left()
	rowStart := true
	for _, s := range items {
		w := flowPillWidth(f, s, opts)
		if !rowStart && x+w > p.Right() {
			rows++
			x = p.Left()
		}
		x += w + 2*MM
		rowStart = false
	}
	return float64(rows) * FlowRowHeight
}

func flowPillWidth(f *Frame, s string, opts FlowOptions) float64 {
	w := PillWidth(f, s) + 2*MM
	if opts.Check {
		w += checkSlot
	}
	return w
}

func drawFlowPill(f *Frame, x, y float64, s string, w float64, opts FlowOptions) {
	h := 5.5 * MM
	color := f.Color(opts.Role)
	f.Canvas.RoundedRect(x, y, w, h, PillRadius, f.Tinted(opts.Role, 0.15))
	tx := x + PillPadding
	if opts.Check {
		CheckMark(f.Canvas, tx+checkSlot/2-0.5*MM, y+h/2, 1.1*MM, color)
		tx += checkSlot
	}
	f.Canvas.Text(tx, y+4*MM, s, PillFont, color, style.Start)
}

// CheckMark strokes a check mark centered on (cx, cy) with half-size r.
func CheckMark(c render.Canvas, cx, cy, r float64, color style.Color) {
	lw := r * 0.35
	c.Line(cx-r, cy, cx-r*0.3, cy+r*0.7, lw, color)
	c.Line(cx-r*0.3, cy+r*0.7, cx+r, cy-r*0.7, lw, color)
}

// ProgressBar draws a rounded track of width w and overlays the filled
// portion. fraction is clamped to [0, 1].
func ProgressBar(c render.Canvas, x, y, w, h, fraction float64, fill, track style.Color) {
	fraction = clampUnit(fraction)
	r := math.Min(1*MM, h/2)
	c.RoundedRect(x, y, w, h, r, track)
	fw := math.Max(0, math.Min(w, w*fraction))
	if fw <= 0 {
		return
	}
	c.RoundedRect(x, y, fw, h, math.Min(r, fw/2), fill)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SectionHeader draws a tinted strip with an accent bar and the upper-cased
// label. keepWith is the height of the first block that follows; the header
// moves to a new page together with it.
func SectionHeader(f *Frame, label string, role style.Role, keepWith float64) {
	p := f.Pager
	p.EnsureSpace(HeaderAdvance + keepWith)
	y := p.Y()
	color := f.Color(role)
	f.Canvas.RoundedRect(p.Left(), y, p.ContentWidth(), HeaderHeight, 2*MM, f.Tinted(role, 0.15))
	f.Canvas.FillRect(p.Left(), y, headerBar, HeaderHeight, color)
	f.Canvas.Text(p.Left()+headerInset, y+5.5*MM, strings.ToUpper(label), HeaderFont, color, style.Start)
	f.debugf("[Layout] header %q at page %d y=%.1f", label, p.Page(), y)
	p.Advance(HeaderAdvance)
}

// Block is a bordered block with a small caption above wrapped body text.
// Its height is max(MinHeight, lines*LineHeight + Chrome); zero LineHeight
// and Chrome fall back to BlockLineHeight and BlockChrome.
type Block struct {
	Label     string
	Body      string
	Role      style.Role
	Tint      float64
	MinHeight float64
	// LineHeight is the per-line allowance used for sizing. Lines are
	// always drawn BlockLineHeight apart.
	LineHeight float64
	Chrome     float64
}

// Block geometry.
const (
	BlockInset      = 3 * MM
	BlockLineHeight = 4.2 * MM
	BlockChrome     = 8 * MM
	BlockGap        = 3 * MM
	blockLabelBase  = 4 * MM
	blockTextBase   = 8.5 * MM
)

func (b Block) height(lines int) float64 {
	lh, chrome := b.LineHeight, b.Chrome
	if lh == 0 {
		lh = BlockLineHeight
	}
	if chrome == 0 {
		chrome = BlockChrome
	}
	return math.Max(b.MinHeight, float64(lines)*lh+chrome)
}

// BlockTextWidth is the wrap width inside a block.
func BlockTextWidth(f *Frame) float64 {
	return f.Pager.ContentWidth() - 14*MM
}

// BlockHeight returns the height of b's background, without the gap.
func BlockHeight(f *Frame, b Block) float64 {
	return b.height(len(f.Wrap(b.Body, BlockTextWidth(f), BodyFont)))
}

// TextBlock draws b as one atomic unit at the cursor and advances past it.
func TextBlock(f *Frame, b Block) {
	p := f.Pager
	lines := f.Wrap(b.Body, BlockTextWidth(f), BodyFont)
	h := b.height(len(lines))
	p.EnsureSpace(h)
	y := p.Y()
	x := p.Left()
	f.Canvas.RoundedRect(x, y, p.ContentWidth(), h, 1.5*MM, f.Tinted(b.Role, b.Tint))
	f.Canvas.Text(x+BlockInset, y+blockLabelBase, b.Label, LabelFont, f.Color(b.Role), style.Start)
	for i, line := range lines {
		f.Canvas.Text(x+BlockInset, y+blockTextBase+float64(i)*BlockLineHeight, line, BodyFont, f.Color(style.Body), style.Start)
	}
	p.Advance(h + BlockGap)
}
