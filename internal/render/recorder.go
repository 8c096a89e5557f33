package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/careerpath/roadmappdf/internal/style"
	"github.com/careerpath/roadmappdf/internal/text"
)

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpRoundedRect
	OpCircle
	OpStrokeCircle
	OpStrokeRect
	OpLine
	OpText
	OpImage
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill_rect"
	case OpRoundedRect:
		return "rounded_rect"
	case OpCircle:
		return "circle"
	case OpStrokeCircle:
		return "stroke_circle"
	case OpStrokeRect:
		return "stroke_rect"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	case OpImage:
		return "image"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

// Op is one recorded drawing call.
type Op struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64
	R     float64
	Color style.Color
	Text  string
	Font  style.Font
	Align style.Align
	Name  string
}

// Page holds the primitives drawn on one page, in order.
type Page struct {
	Ops []Op
}

// Texts returns the text runs on the page.
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any text run on the page contains sub.
func (p *Page) HasText(sub string) bool {
	for _, op := range p.Ops {
		if op.Kind == OpText && strings.Contains(op.Text, sub) {
			return true
		}
	}
	return false
}

// Recorder is an in-memory Canvas that materializes every page as a list of
// primitives. It measures text with text.Approx unless a Measurer is set.
type Recorder struct {
	Width, Height float64
	Measurer      text.Measurer
	Pages         []*Page

	current int
	images  map[string]bool
	err     error
}

// NewRecorder returns an empty recorder with the given page size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{Width: w, Height: h, images: make(map[string]bool)}
}

func (r *Recorder) PageSize() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) AddPage() {
	r.Pages = append(r.Pages, &Page{})
	r.current = len(r.Pages) - 1
}

func (r *Recorder) SetPage(n int) {
	if n < 1 || n > len(r.Pages) {
		r.fail(fmt.Errorf("page %d out of range [1, %d]", n, len(r.Pages)))
		return
	}
	r.current = n - 1
}

func (r *Recorder) PageCount() int { return len(r.Pages) }

func (r *Recorder) FillRect(x, y, w, h float64, c style.Color) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) RoundedRect(x, y, w, h, rad float64, c style.Color) {
	r.record(Op{Kind: OpRoundedRect, X: x, Y: y, W: w, H: h, R: rad, Color: c})
}

func (r *Recorder) Circle(cx, cy, rad float64, c style.Color) {
	r.record(Op{Kind: OpCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, lineWidth float64, c style.Color) {
	r.record(Op{Kind: OpStrokeCircle, X: cx, Y: cy, R: rad, W: lineWidth, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c style.Color) {
	r.record(Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, R: lineWidth, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, lineWidth float64, c style.Color) {
	r.record(Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1, R: lineWidth, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, f style.Font, c style.Color, align style.Align) {
	r.record(Op{Kind: OpText, X: x, Y: y, Text: s, Font: f, Color: c, Align: align})
}

func (r *Recorder) Image(name string, x, y, w, h float64) {
	if !r.images[name] {
		r.fail(fmt.Errorf("image %q not registered", name))
		return
	}
	r.record(Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Name: name})
}

func (r *Recorder) RegisterImage(name string, png []byte) error {
	if len(png) == 0 {
		return errors.New("empty image data")
	}
	if r.images == nil {
		r.images = make(map[string]bool)
	}
	r.images[name] = true
	return nil
}

func (r *Recorder) MeasureText(s string, f style.Font) float64 {
	if r.Measurer != nil {
		return r.Measurer.MeasureText(s, f)
	}
	return text.Approx{}.MeasureText(s, f)
}

func (r *Recorder) Err() error { return r.err }

// Output writes a plain-text listing of every page, one primitive per line.
func (r *Recorder) Output(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	for i, p := range r.Pages {
		if _, err := fmt.Fprintf(w, "page %d\n", i+1); err != nil {
			return err
		}
		for _, op := range p.Ops {
			if _, err := fmt.Fprintf(w, "  %s x=%.2f y=%.2f w=%.2f h=%.2f %s %q\n",
				op.Kind, op.X, op.Y, op.W, op.H, op.Color.Hex(), op.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// Current returns the page currently being drawn on, or nil before the
// first AddPage.
func (r *Recorder) Current() *Page {
	if len(r.Pages) == 0 {
		return nil
	}
	return r.Pages[r.current]
}

func (r *Recorder) record(op Op) {
	if len(r.Pages) == 0 {
		r.fail(errors.New("draw before first page"))
		return
	}
	p := r.Pages[r.current]
	p.Ops = append(p.Ops, op)
}

func (r *Recorder) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
